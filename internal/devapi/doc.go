// Package devapi is an in-memory implementation of the organo REST backend,
// used for local development and as the server side of the client tests.
//
// HTTP API
//
//	POST   /auth/login                  {username, password} -> tokens + user
//	POST   /auth/refresh                {refresh_token} -> new token pair (rotated)
//	POST   /auth/logout                 {refresh_token}
//	GET    /auth/me
//
//	GET    /subjects                    POST /subjects
//	GET    /subjects/{id}               PUT /subjects/{id}   DELETE /subjects/{id}
//	GET    /subjects/{id}/groups        POST /groups         DELETE /groups/{id}
//	GET    /subjects/{id}/topics        POST /topics
//	GET    /topics/{id}                 PUT /topics/{id}     DELETE /topics/{id}
//	GET    /topics/{id}/epigraphs       POST /epigraphs      DELETE /epigraphs/{id}
//	GET    /topics/{id}/concepts        POST /concepts
//	PUT    /concepts/{id}               DELETE /concepts/{id}
//	GET    /topics/{id}/questions       POST /questions      DELETE /questions/{id}
//	GET    /questions/{id}/answers      POST /questions/{id}/answers
//
//	POST   /exams                       generate from stored questions
//	POST   /exams/{id}/submit           grade a submission
//	GET    /subjects/{id}/analytics
//	GET    /backups                     POST /backups        POST /backups/{id}/restore
//	POST   /invitations
//
// Behaviour
//
//   - Every route except login, refresh and logout needs a bearer access
//     token. Access tokens are HS256 JWTs with a short lifetime; refresh
//     tokens are opaque and rotated on every use.
//   - Writes to content, analytics, backups and invitations need the teacher
//     or admin role.
//   - Errors are JSON {"error": "..."} with a matching status code.
//   - All state is held in memory and lost on process exit. Two accounts are
//     seeded: teacher/teacher and student/student.
package devapi
