package domain

import (
	interfaces "organo/internal/domain/interfaces"
	types "organo/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Username         = types.Username
	Role             = types.Role
	ID               = types.ID
	AccountProfile   = types.AccountProfile
	Credentials      = types.Credentials
	TokenPair        = types.TokenPair
	LoginResponse    = types.LoginResponse
	User             = types.User
	Session          = types.Session
	Subject          = types.Subject
	Group            = types.Group
	Topic            = types.Topic
	Epigraph         = types.Epigraph
	Concept          = types.Concept
	TopicOutline     = types.TopicOutline
	Question         = types.Question
	Answer           = types.Answer
	ExamRequest      = types.ExamRequest
	Exam             = types.Exam
	ExamSubmission   = types.ExamSubmission
	ExamResult       = types.ExamResult
	TopicStats       = types.TopicStats
	SubjectAnalytics = types.SubjectAnalytics
	Backup           = types.Backup
	Invitation       = types.Invitation
	Intent           = types.Intent
	Screen           = types.Screen
	KeywordSet       = types.KeywordSet
	Command          = types.Command
)

// Role values re-exported for callers that only import domain.
const (
	RoleStudent = types.RoleStudent
	RoleTeacher = types.RoleTeacher
	RoleAdmin   = types.RoleAdmin
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	SessionStore      = interfaces.SessionStore
	AccountStore      = interfaces.AccountStore
	CommandRepository = interfaces.CommandRepository
	RequestRecord     = interfaces.RequestRecord
	RequestRecorder   = interfaces.RequestRecorder
	RequestRepository = interfaces.RequestRepository
	AuthClient        = interfaces.AuthClient
	ContentClient     = interfaces.ContentClient
	ExamClient        = interfaces.ExamClient
	AdminClient       = interfaces.AdminClient
	BackendClient     = interfaces.BackendClient
	AuthService       = interfaces.AuthService
	ContentService    = interfaces.ContentService
	ExamService       = interfaces.ExamService
	NavigationService = interfaces.NavigationService
)
