// Package loginmock simulates the login endpoint without network I/O.
//
// Classify is a pure function of the request body. Handler and NewRouter
// serve it over HTTP, and Transport plugs it into an http.Client so outbound
// calls to registered URLs never leave the process.
package loginmock
