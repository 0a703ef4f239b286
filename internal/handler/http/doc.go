// Package http implements the HTTP transport of the print server.
//
// Users register, log in and submit documents through the bearer-protected
// /api routes. Printer agents poll the /api/printer routes (and the legacy
// /get_doc_settings, /get_doc and /pop_doc aliases) with their printer_id.
// Tracing, access logging, metrics and compression wrap every route.
package http
