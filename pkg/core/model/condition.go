// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// Condition specifies the vehicle condition enum and accepts the
// used and new values. Although this enum is numeric, it is
// (de)serialized as a string for readability in the adapter layer.
type Condition int

// Valid values for the Condition enum.
const (
	ConditionInvalid Condition = iota // zero value is invalid

	ConditionUsed
	ConditionNew
)

// ErrUnknownCondition indicates that a given string may not be parsed
// as a valid/known vehicle condition. The invalid string itself is not
// encoded in the error because the caller of ParseCondition already
// knows about it and is responsible to wrap this error with that
// extra context if required.
var ErrUnknownCondition = errors.New("unknown vehicle condition")

// ConditionError indicates an invalid condition value, containing the
// invalid value as an integer.
type ConditionError int

// Error implements the error interface, returning a string
// representation of the ConditionError.
func (e ConditionError) Error() string {
	return fmt.Sprintf("invalid vehicle condition: %d", e)
}

// Validate returns nil if Condition value is valid. For invalid
// values, an instance of the ConditionError will be returned.
func (c Condition) Validate() error {
	switch c {
	case ConditionUsed, ConditionNew:
		return nil
	default:
		return ConditionError(c)
	}
}

// String converts the Condition enum to a string, helping to
// serialize it for transmission to web clients.
// Invalid condition causes a panic.
func (c Condition) String() string {
	switch c {
	case ConditionUsed:
		return "USED"
	case ConditionNew:
		return "NEW"
	default:
		panic(ConditionError(c))
	}
}

// ParseCondition parses the given string and returns a Condition,
// helping to deserialize it when reading a REST API request.
// For invalid strings, ConditionInvalid and ErrUnknownCondition
// will be returned.
func ParseCondition(c string) (Condition, error) {
	switch c {
	case "USED":
		return ConditionUsed, nil
	case "NEW":
		return ConditionNew, nil
	default:
		return ConditionInvalid, ErrUnknownCondition
	}
}
