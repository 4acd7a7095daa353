package main

// General API documentation for swaggo. The generated document lives in
// internal/httpapi/docs.
//
// @title           pubsubd API
// @version         1.0
// @description     HTTP API for an in-process publish/subscribe registry.
//
// @contact.name   pubsubd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
