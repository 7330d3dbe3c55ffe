package shared

import (
	"errors"
	"fmt"
)

const (
	userCancelledMessageConstant     = "operation cancelled"
	notLinkedMessageConstant         = "space is not linked to a remote repository"
	emptyResultURLMessageConstant    = "rewritten remote url is empty"
	cloneFailedErrorTemplateConstant = "clone failed: %v"
	syncFailedErrorTemplateConstant  = "sync failed during %s: %v"
	mergeFailedErrorTemplateConstant = "moving cloned content into the space failed: %v"
	stagingOccupiedTemplateConstant  = "staging directory %s holds content that is not a clone"
)

// SyncStage names a fatal step of the sync cycle.
type SyncStage string

// Fatal sync stages.
const (
	SyncStageStage SyncStage = SyncStage("stage")
	SyncStagePull  SyncStage = SyncStage("pull")
	SyncStagePush  SyncStage = SyncStage("push")
)

var (
	// ErrUserCancelled indicates a blank or dismissed prompt or a declined confirmation.
	ErrUserCancelled = errors.New(userCancelledMessageConstant)
	// ErrNotLinked indicates the space has no resolvable remote.
	ErrNotLinked = errors.New(notLinkedMessageConstant)
	// ErrEmptyResultURL indicates a credential rewrite serialized to nothing.
	ErrEmptyResultURL = errors.New(emptyResultURLMessageConstant)
)

// CloneFailedError reports a clone into the staging directory that did not succeed.
type CloneFailedError struct {
	Cause error
}

// Error describes the clone failure.
func (failure CloneFailedError) Error() string {
	return fmt.Sprintf(cloneFailedErrorTemplateConstant, failure.Cause)
}

// Unwrap exposes the underlying command failure.
func (failure CloneFailedError) Unwrap() error {
	return failure.Cause
}

// SyncFailedError reports a fatal sync step.
type SyncFailedError struct {
	Stage SyncStage
	Cause error
}

// Error describes the failed stage.
func (failure SyncFailedError) Error() string {
	return fmt.Sprintf(syncFailedErrorTemplateConstant, failure.Stage, failure.Cause)
}

// Unwrap exposes the underlying command failure.
func (failure SyncFailedError) Unwrap() error {
	return failure.Cause
}

// MergeFailedError reports a failure while moving staged content into the space.
type MergeFailedError struct {
	Cause error
}

// Error describes the merge failure.
func (failure MergeFailedError) Error() string {
	return fmt.Sprintf(mergeFailedErrorTemplateConstant, failure.Cause)
}

// Unwrap exposes the underlying failure.
func (failure MergeFailedError) Unwrap() error {
	return failure.Cause
}

// StagingOccupiedError reports a staging directory that exists but does not hold
// a clone, so removing it would destroy space content.
type StagingOccupiedError struct {
	Path string
}

// Error names the occupied directory.
func (failure StagingOccupiedError) Error() string {
	return fmt.Sprintf(stagingOccupiedTemplateConstant, failure.Path)
}
