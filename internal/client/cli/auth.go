package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/kycreview/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates. The username prompt
// offers the last successful username as default. The outcome is reported
// through notifications; on success the pending queue is printed.
func (a *App) Login(ctx context.Context) error {
	prompt := "Enter username"
	last := a.controller.LastUsername()
	if last != "" {
		prompt = fmt.Sprintf("Enter username [%s]", last)
	}

	userName, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if userName == "" {
		userName = last
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.controller.Login(ctx, userName, string(password)); err != nil {
		a.log.Debug(ctx, "login unsuccessful", "username", userName, "error", err)
		return err
	}

	renderQueue(a.out, a.controller.Snapshot().Records)
	return nil
}

// Logout ends the session and forgets the stored token.
func (a *App) Logout(ctx context.Context) error {
	a.controller.Logout(ctx)
	return nil
}
