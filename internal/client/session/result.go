package session

import "festdraft/internal/client/api"

// FailureKind says why a login did not succeed.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureInvalidInput
	FailureCredentials
	FailureNetwork
	FailureServer
	FailureStorage
	FailureBusy
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureInvalidInput:
		return "invalid_input"
	case FailureCredentials:
		return "credentials"
	case FailureNetwork:
		return "network"
	case FailureServer:
		return "server"
	case FailureStorage:
		return "storage"
	case FailureBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// Message is the text shown to the user. It never carries server detail.
func (k FailureKind) Message() string {
	switch k {
	case FailureNone:
		return ""
	case FailureInvalidInput:
		return "email and password are required"
	case FailureCredentials:
		return "invalid email or password"
	case FailureNetwork:
		return api.MessageNetwork
	case FailureStorage:
		return "signed in, but the session could not be saved"
	case FailureBusy:
		return "a sign-in is already in progress"
	default:
		return "sign-in failed, please try again"
	}
}

// LoginResult is the outcome of Gate.Login. Session is set only when OK.
type LoginResult struct {
	OK      bool
	Session *Session
	Failure FailureKind
	Message string
}

func failed(kind FailureKind) LoginResult {
	return LoginResult{Failure: kind, Message: kind.Message()}
}
