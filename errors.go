package rest2

import "errors"

// Error kinds shared across the preparation pipeline. Functions wrap these
// with fmt.Errorf("rest2/Func: ...: %w", ...) so callers can classify with
// errors.Is while still getting the full context in the message.
var (
	// ErrEmptySelection means a selection query matched no atoms.
	ErrEmptySelection = errors.New("selection matched no atoms")

	// ErrTrajectoryUnavailable means a trajectory-based analysis was requested
	// on a structure loaded without trajectory frames.
	ErrTrajectoryUnavailable = errors.New("no trajectory loaded")

	// ErrInvalidParameter covers cutoffs, thresholds and other numeric
	// parameters outside their valid domain. Checked before any scan starts.
	ErrInvalidParameter = errors.New("parameter outside valid domain")

	// ErrEmptySolute means the resolved solute atom set came out empty.
	ErrEmptySolute = errors.New("solute atom set is empty")

	// ErrNoAtomsSection means a topology had no [ atoms ] section for the
	// molecule under annotation.
	ErrNoAtomsSection = errors.New("no atoms section found")

	// ErrEmptyIndexSet means a range encoding was requested for zero atoms.
	ErrEmptyIndexSet = errors.New("empty index set")

	// ErrExternalTool means an external preprocessing command failed or
	// produced no output.
	ErrExternalTool = errors.New("external tool failure")
)

// FileIndex converts a 0-based in-memory atom index to the 1-based numbering
// used in topology files and PLUMED atom lists.
func FileIndex(i int) int {
	return i + 1
}

// MemIndex converts a 1-based file atom number to the 0-based index used for
// slices and solute sets.
func MemIndex(i int) int {
	return i - 1
}
