/*
 * errors.go, part of goLigPrep.
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package ligprep

import (
	"fmt"
	"strings"
)

// Error is the interface for errors that the packages in this library implement.
// The Decorate method allows to add and retrieve info from the error, without
// changing its type or wrapping it around something else. Each caller in the
// stack can add its own name, plus any relevant information, as
// "FunctionName: Extra info". If passed an empty string, Decorate just returns
// the current decoration slice without adding to it.
type Error interface {
	error
	Decorate(string) []string
}

// Err is the concrete error used across goLigPrep. The zero value is not
// useful; build it with NewErr.
type Err struct {
	message string
	deco    []string
}

// NewErr returns an error with the given message, already decorated with the
// name of the function that produced it.
func NewErr(where, message string) *Err {
	return &Err{message: message, deco: []string{where}}
}

// Errorf builds the message with fmt.Sprintf.
func Errorf(where, format string, a ...interface{}) *Err {
	return NewErr(where, fmt.Sprintf(format, a...))
}

func (err *Err) Error() string {
	if len(err.deco) == 0 {
		return err.message
	}
	return fmt.Sprintf("%s (%s)", err.message, strings.Join(err.deco, " <- "))
}

// Decorate adds dec to the decoration slice of the error, and returns the
// resulting slice.
func (err *Err) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// DecorateErr asserts that err implements Error and decorates it with the
// caller's name before returning it. Errors from outside the library are
// wrapped into an *Err first, so it is safe on any non-nil error.
func DecorateErr(err error, caller string) error {
	if err == nil {
		return nil
	}
	err2, ok := err.(Error)
	if !ok {
		return NewErr(caller, err.Error())
	}
	err2.Decorate(caller)
	return err2
}
