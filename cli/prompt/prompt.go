// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ava-labs/countervm/codec"
)

var (
	ErrInputEmpty      = errors.New("input is empty")
	ErrInputTooLarge   = errors.New("input is too large")
	ErrInvalidChoice   = errors.New("invalid choice")
	ErrIndexOutOfRange = errors.New("index out-of-range")
)

// ParseAddress parses a bech32 address with the [hrp] prefix.
func ParseAddress(hrp, input string) (codec.Address, error) {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return codec.EmptyAddress, ErrInputEmpty
	}
	return codec.ParseAddressBech32(hrp, input)
}

func Address(label string, hrp string) (codec.Address, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := ParseAddress(hrp, input)
			return err
		},
	}
	recipient, err := promptText.Run()
	if err != nil {
		return codec.EmptyAddress, err
	}
	return ParseAddress(hrp, recipient)
}

func String(label string, minLen int, maxLen int) (string, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) < minLen {
				return ErrInputEmpty
			}
			if len(input) > maxLen {
				return ErrInputTooLarge
			}
			return nil
		},
	}
	text, err := promptText.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ParseUint8 parses a count in [0, 255].
func ParseUint8(input string) (uint8, error) {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return 0, ErrInputEmpty
	}
	v, err := strconv.ParseUint(input, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be in [0, 255]", ErrInvalidChoice, input)
	}
	return uint8(v), nil
}

func Uint8(label string) (uint8, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := ParseUint8(input)
			return err
		},
	}
	raw, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return ParseUint8(raw)
}

// ParseChoice parses an index in [0, maxChoice).
func ParseChoice(input string, maxChoice int) (int, error) {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return 0, ErrInputEmpty
	}
	index, err := strconv.Atoi(input)
	if err != nil {
		return 0, err
	}
	if index >= maxChoice || index < 0 {
		return 0, ErrIndexOutOfRange
	}
	return index, nil
}

func Choice(label string, maxChoice int) (int, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := ParseChoice(input, maxChoice)
			return err
		},
	}
	rawIndex, err := promptText.Run()
	if err != nil {
		return -1, err
	}
	return ParseChoice(rawIndex, maxChoice)
}

// ParseBool parses a y/n answer.
func ParseBool(input string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return false, ErrInputEmpty
	case "y":
		return true, nil
	case "n":
		return false, nil
	default:
		return false, ErrInvalidChoice
	}
}

func Bool(label string) (bool, error) {
	promptText := promptui.Prompt{
		Label: fmt.Sprintf("%s (y/n)", label),
		Validate: func(input string) error {
			_, err := ParseBool(input)
			return err
		},
	}
	raw, err := promptText.Run()
	if err != nil {
		return false, err
	}
	return ParseBool(raw)
}

func Continue() (bool, error) {
	return Bool("continue")
}
