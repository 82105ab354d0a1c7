// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"path"
)

// StaticFiles serves files under dir. Directories are served only through
// their index.html; there are no listings.
func StaticFiles(dir string) http.Handler {
	root := http.Dir(dir)
	fileServer := http.FileServer(root)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)

		f, err := root.Open(name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		info, err := f.Stat()
		_ = f.Close()
		if err != nil {
			http.NotFound(w, r)
			return
		}

		if info.IsDir() {
			index, err := root.Open(path.Join(name, "index.html"))
			if err != nil {
				http.NotFound(w, r)
				return
			}
			_ = index.Close()
		}

		fileServer.ServeHTTP(w, r)
	})
}
