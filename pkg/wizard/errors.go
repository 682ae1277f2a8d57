// SPDX-License-Identifier: Apache-2.0
package wizard

import (
	"errors"
	"fmt"
)

// ErrIncomplete is matched by every ValidationError
var ErrIncomplete = errors.New("quiz incomplete")

// ValidationError names the first section that still needs an answer
type ValidationError struct {
	Key Key
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Please complete the %s section.", e.Key.Label())
}

// Is lets errors.Is(err, ErrIncomplete) match
func (e *ValidationError) Is(target error) bool {
	return target == ErrIncomplete
}
