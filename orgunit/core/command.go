package core

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Command represents an intent to change one organizational unit.
// The set of command types is closed: Decide matches it exhaustively.
type Command interface {
	// CommandType returns the type identifier for this command, used for observability and routing.
	CommandType() string

	// Validate checks the command payload in isolation, before any state is
	// consulted. All returned errors match ErrInvalidCommand with errors.Is.
	Validate() error
}

func invalidCommand(format string, args ...any) error {
	return errors.Join(ErrInvalidCommand, fmt.Errorf(format, args...))
}

func requireID(field string, id uuid.UUID) error {
	if id == uuid.Nil {
		return invalidCommand("%s must not be nil", field)
	}

	return nil
}

func requireText(field string, value string) error {
	if value == "" {
		return invalidCommand("%s must not be empty", field)
	}

	return nil
}
