// Package docs Estate Backoffice API.
//
// Back-office API for a real-estate catalog. Manages properties, projects and
// offices with a four-level location hierarchy (country, city, district,
// neighborhood), forward and reverse geocoding, a multi-step listing form,
// media uploads, contact leads and editable content blocks.
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//	- multipart/form-data
//
//	Produces:
//	- application/json
//
//	Security:
//	- bearer_auth:
//
//	SecurityDefinitions:
//	bearer_auth:
//	     type: apiKey
//	     name: Authorization
//	     in: header
//
// swagger:meta
package docs
