package platform

import (
	"runtime"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Platform identifiers, matching the values of runtime.GOOS.
const (
	Windows = "windows"
	Linux   = "linux"
	Darwin  = "darwin"
)

// ErrUnsupportedPlatform is returned when an operating system identifier has
// no known Profile.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Profile describes how executables are named and located on one operating
// system family.
type Profile struct {
	// ID is the platform identifier (windows, linux, darwin).
	ID string

	// ExecutableSuffix is appended to the formatter name when the bare name
	// cannot be found on the search path.
	ExecutableSuffix string

	// LookupCommand is the "which"-style utility used to probe the search path.
	LookupCommand string
}

// profiles is the lookup table of known platforms. It is never written after
// package initialisation.
var profiles = map[string]Profile{
	Windows: {ID: Windows, ExecutableSuffix: ".exe", LookupCommand: "where"},
	Linux:   {ID: Linux, ExecutableSuffix: ".pl", LookupCommand: "which"},
	Darwin:  {ID: Darwin, ExecutableSuffix: ".pl", LookupCommand: "which"},
}

// Resolve returns the Profile registered for id.
// Unknown identifiers return ErrUnsupportedPlatform.
func Resolve(id string) (Profile, error) {
	p, ok := profiles[id]
	if !ok {
		return Profile{}, errors.Wrapf(ErrUnsupportedPlatform, "%q", id)
	}
	return p, nil
}

// Current resolves the Profile for the running operating system.
func Current() (Profile, error) {
	return Resolve(runtime.GOOS)
}

// IDs returns all known platform identifiers in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Executable returns name with the profile's suffix appended, unless name
// already ends with it.
func (p Profile) Executable(name string) string {
	if p.ExecutableSuffix == "" || strings.HasSuffix(name, p.ExecutableSuffix) {
		return name
	}
	return name + p.ExecutableSuffix
}
