package handler

// Route pattern constants for chi router registration.
const (
	// RouteAPI is the prefix of every JSON endpoint.
	RouteAPI = "/api"
	// RouteAdmin is the admin sub-tree under RouteAPI.
	RouteAdmin = "/admin"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteCheck reports whether the caller holds a session.
	RouteCheck = "/check"

	// RouteProjects is the projects collection route.
	RouteProjects = "/projects"
	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteProjectsID is the single project route pattern.
	RouteProjectsID = RouteProjects + RouteParamID

	// RouteUploads serves stored attachments.
	RouteUploads = "/uploads"
	// RouteHealthLive is the liveness probe.
	RouteHealthLive = "/health/live"
	// RouteHealthReady is the readiness probe.
	RouteHealthReady = "/health/ready"
	// RouteMetrics is the Prometheus endpoint.
	RouteMetrics = "/metrics"
)

// Form and query field names.
const (
	fieldUsername       = "username"
	fieldPassword       = "password"
	fieldImage          = "image"
	fieldTitle          = "title"
	fieldDescription    = "description"
	fieldLocation       = "location"
	fieldStatus         = "status"
	fieldCategory       = "category"
	fieldArea           = "area"
	fieldBedrooms       = "bedrooms"
	fieldBathrooms      = "bathrooms"
	fieldPrice          = "price"
	fieldCompletionDate = "completion_date"
)

// Response messages.
const (
	msgInvalidCredentials = "Invalid credentials"
	msgDatabaseError      = "Database error"
	msgProjectNotFound    = "Project not found"
	msgInvalidProjectID   = "Invalid project ID"
	msgInvalidRequestBody = "Invalid request body"
	msgUploadFailed       = "Failed to store upload"
)

// maxMemory bounds the in-memory part of a multipart body; larger files
// spill to temporary files.
const maxMemory = 32 << 20

// HeaderContentType is the Content-Type HTTP header name.
const HeaderContentType = "Content-Type"
