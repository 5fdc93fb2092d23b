// Package webform serves the quote form as server-rendered HTML. Each page
// load starts a session; the browser posts one event per request (next, back,
// select, submit) and gets redirected back to the rendered page. Requests
// sending Accept: application/json receive the session state instead.
package webform
