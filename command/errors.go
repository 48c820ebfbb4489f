package command

import "errors"

// Command errors.
var (
	// ErrUnknownCommand indicates the platform has no command by that name.
	ErrUnknownCommand = errors.New("command: unknown command")

	// ErrNotPatched indicates no patch is installed for the command.
	ErrNotPatched = errors.New("command: command is not patched")

	// ErrAlreadyPatched indicates a patch already exists for the command.
	ErrAlreadyPatched = errors.New("command: command is already patched")

	// ErrAlreadyInstalled indicates the patch already has an override.
	ErrAlreadyInstalled = errors.New("command: override already installed")

	// ErrNilOverride indicates Install was given no behavior.
	ErrNilOverride = errors.New("command: nil override")
)
