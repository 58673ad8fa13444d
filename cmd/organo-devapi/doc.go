// Command organo-devapi serves the in-memory organo backend for local
// development. See package devapi for the HTTP API.
//
//	organo-devapi --addr :8080 --access-ttl 15m
//
// Two accounts are seeded, teacher/teacher and student/student. All state is
// lost when the process exits.
package main
