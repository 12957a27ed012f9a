package netcopy

import (
	"fmt"
	"os"
	"os/user"
	"strings"
)

// UserResolver finds the login name of the current OS user. Primary is tried
// first; Fallback covers contexts where it is unavailable, such as services
// without a login session.
type UserResolver struct {
	Primary  func() (string, error)
	Fallback func() (string, error)
}

// DefaultUserResolver looks the user up in the OS account database, then in
// the login environment variables.
var DefaultUserResolver = UserResolver{
	Primary:  osAccountName,
	Fallback: envLoginName,
}

// CurrentUser resolves the current user with DefaultUserResolver.
func CurrentUser() (string, error) {
	return DefaultUserResolver.Resolve()
}

// Resolve returns the first non-empty valid name produced by Primary or
// Fallback.
func (r UserResolver) Resolve() (string, error) {
	l := sub("user")

	var errs []string
	for _, lookup := range []func() (string, error){r.Primary, r.Fallback} {
		if lookup == nil {
			continue
		}
		name, err := lookup()
		if err != nil {
			l.Debug("user lookup failed", "err", err)
			errs = append(errs, err.Error())
			continue
		}
		name = strings.TrimSpace(name)
		if err := ValidateUser(name); err != nil {
			errs = append(errs, err.Error())
			continue
		}
		return name, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUserUnknown, strings.Join(errs, "; "))
}

// ValidateUser rejects names that cannot be a direct child of the base
// directory.
func ValidateUser(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidUser, name)
	}
	return nil
}

func osAccountName() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	name := u.Username
	// Windows reports DOMAIN\name.
	if i := strings.LastIndex(name, `\`); i >= 0 {
		name = name[i+1:]
	}
	return name, nil
}

func envLoginName() (string, error) {
	for _, key := range []string{"LOGNAME", "USER", "LNAME", "USERNAME"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("no login name in environment")
}
