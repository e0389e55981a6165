package core

import (
	"errors"
	"fmt"

	"github.com/ezBadminton/gocup/esports"
)

var (
	ErrRoster                 = errors.New("roster error")
	ErrTooFewParticipants     = fmt.Errorf("%w: not enough participants to start", ErrRoster)
	ErrTooManyParticipants    = fmt.Errorf("%w: participant limit reached", ErrRoster)
	ErrDuplicateParticipant   = fmt.Errorf("%w: duplicate participant id", ErrRoster)
	ErrUnknownParticipant     = fmt.Errorf("%w: unknown participant", ErrRoster)
	ErrInvalidResult          = esports.ErrInvalidResult
	ErrUnknownMatch           = fmt.Errorf("%w: unknown match", ErrInvalidResult)
	ErrSlotsUnresolved        = fmt.Errorf("%w: the opponents are not determined yet", ErrInvalidResult)
	ErrInsufficientQualifiers = errors.New("not enough qualifiers to build the bracket")
	ErrBracketCorruption      = errors.New("bracket corruption")
	ErrMatchUndecided         = errors.New("the match has no winner")
	ErrCorruptSnapshot        = errors.New("corrupt snapshot")
	ErrWrongStage             = errors.New("not allowed in the current stage")
	ErrInvalidSettings        = errors.New("invalid settings")
)
