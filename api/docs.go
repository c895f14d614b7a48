package api

// @title Stripper API
// @version v0.3.0
// @description Strips comment lines and debug statements from documents and exposes the local run history.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8779
// @BasePath /api
// @schemes http
// @query.collection.format multi
