// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/model"
)

var (
	errInvalidID   = errors.New("invalid id")
	errInvalidBody = errors.New("invalid request body")
)

// parseIDParam reads the {id} URL parameter.
func parseIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// mediaType returns the request's media type without parameters.
func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get(HeaderContentType))
	if err != nil {
		return ""
	}
	return mt
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// decodeLogin accepts a JSON body or a urlencoded form.
func decodeLogin(r *http.Request) (loginRequest, error) {
	var req loginRequest
	if mediaType(r) == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return loginRequest{}, fmt.Errorf("%w: %v", errInvalidBody, err)
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return loginRequest{}, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	req.Username = r.PostFormValue(fieldUsername)
	req.Password = r.PostFormValue(fieldPassword)
	return req, nil
}

// projectUpload is the optional attachment of a create or update.
type projectUpload struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// decodeProject reads the project fields from a multipart, urlencoded or
// JSON body. Only multipart bodies can carry an upload; the returned upload
// is nil when none was sent and must be closed by the caller otherwise.
func decodeProject(r *http.Request) (model.ProjectInput, *projectUpload, error) {
	switch mediaType(r) {
	case "application/json":
		in, err := decodeProjectJSON(r)
		return in, nil, err

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return model.ProjectInput{}, nil, fmt.Errorf("%w: %v", errInvalidBody, err)
		}
		in := projectInputFromValues(r.MultipartForm.Value)

		file, header, err := r.FormFile(fieldImage)
		if errors.Is(err, http.ErrMissingFile) {
			return in, nil, nil
		}
		if err != nil {
			return model.ProjectInput{}, nil, fmt.Errorf("%w: %v", errInvalidBody, err)
		}
		return in, &projectUpload{File: file, Header: header}, nil

	default:
		if err := r.ParseForm(); err != nil {
			return model.ProjectInput{}, nil, fmt.Errorf("%w: %v", errInvalidBody, err)
		}
		return projectInputFromValues(r.PostForm), nil, nil
	}
}

// projectInputFromValues maps form values. A key that was sent, even with an
// empty value, counts as present.
func projectInputFromValues(values url.Values) model.ProjectInput {
	text := func(key string) *string {
		v, ok := values[key]
		if !ok {
			return nil
		}
		s := ""
		if len(v) > 0 {
			s = v[0]
		}
		return &s
	}
	first := func(key string) string {
		if v := values[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	return model.ProjectInput{
		Title:          text(fieldTitle),
		Description:    text(fieldDescription),
		Location:       text(fieldLocation),
		Status:         text(fieldStatus),
		Category:       text(fieldCategory),
		Area:           text(fieldArea),
		Bedrooms:       first(fieldBedrooms),
		Bathrooms:      first(fieldBathrooms),
		Price:          first(fieldPrice),
		CompletionDate: first(fieldCompletionDate),
	}
}

// nullWhenFalse lists the fields where JSON false means not sent.
var nullWhenFalse = map[string]bool{
	fieldBedrooms:       true,
	fieldBathrooms:      true,
	fieldPrice:          true,
	fieldCompletionDate: true,
}

// decodeProjectJSON maps a JSON object. Numbers and strings are both
// accepted for numeric fields; null counts as not sent, and so does false
// for numeric and date fields.
func decodeProjectJSON(r *http.Request) (model.ProjectInput, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return model.ProjectInput{}, fmt.Errorf("%w: %v", errInvalidBody, err)
	}

	values := make(url.Values, len(body))
	for key, raw := range body {
		switch v := raw.(type) {
		case nil:
		case string:
			values.Set(key, v)
		case json.Number:
			values.Set(key, v.String())
		case bool:
			if !v && nullWhenFalse[key] {
				continue
			}
			values.Set(key, strconv.FormatBool(v))
		default:
			return model.ProjectInput{}, fmt.Errorf("%w: field %q must be a string or number", errInvalidBody, key)
		}
	}
	return projectInputFromValues(values), nil
}
