package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mindcandy/internal/client/models"
	"github.com/dmitrijs2005/mindcandy/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// arg returns args[i], or asks for it when it was not given on the command
// line.
func (a *App) arg(args []string, i int, prompt string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

// SendCode issues a verification code. With no mail delivery the code is
// shown right away.
//
//	sendcode [email]
func (a *App) SendCode(ctx context.Context, args []string) error {
	email, err := a.arg(args, 0, "Enter email")
	if err != nil {
		return err
	}
	if err := models.ValidateEmail(email); err != nil {
		return err
	}

	code, err := a.accounts.SendVerificationCode(ctx, email)
	if err != nil {
		return err
	}
	a.printf("Verification code sent to %s. Your code is: %s\n", email, code)
	return nil
}

//	verify [email] [code]
func (a *App) Verify(ctx context.Context, args []string) error {
	email, err := a.arg(args, 0, "Enter email")
	if err != nil {
		return err
	}
	code, err := a.arg(args, 1, "Enter the 6 digit code")
	if err != nil {
		return err
	}

	ok, err := a.accounts.VerifyEmail(ctx, email, code)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("invalid or expired verification code")
	}
	a.println("Email verified! You can register now.")
	return nil
}

// Register asks for the sign-up form fields and creates the account. The
// password is wiped before returning.
func (a *App) Register(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Choose a password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	in := models.RegisterInput{Email: email, Username: username, Password: string(password), Name: name}
	if err := in.Validate(); err != nil {
		return err
	}

	u, err := a.accounts.Register(ctx, in)
	if err != nil {
		return err
	}
	a.printf("Welcome to MindCandy, %s!\n", u.Name)
	return nil
}

//	login [username|email]
func (a *App) Login(ctx context.Context, args []string) error {
	identifier, err := a.arg(args, 0, "Enter username or email")
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.accounts.Login(ctx, models.Credentials{Identifier: identifier, Password: string(password)})
	if err != nil {
		return err
	}
	a.printf("Welcome back, %s!\n", u.Name)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if !a.isLoggedIn() {
		return common.ErrNoActiveSession
	}
	err := a.accounts.Logout(ctx)
	a.println("Logged out.")
	return err
}

func (a *App) WhoAmI(_ context.Context, _ []string) error {
	u, ok := a.accounts.CurrentUser()
	if !ok {
		return common.ErrNoActiveSession
	}

	a.printf("%s (@%s) <%s>\n", u.Name, u.Username, u.Email)
	a.printf("Joined: %s\n", u.JoinedAt.Format("2006-01-02"))
	if u.LastLoginAt != nil {
		a.printf("Last login: %s\n", u.LastLoginAt.Format("2006-01-02 15:04"))
	}
	if u.ProfilePicture != nil {
		a.printf("Picture: %s\n", *u.ProfilePicture)
	}
	return nil
}

const profileUsage = "usage: profile name|email|username|picture <value> | profile picture | profile password | profile deactivate"

// Profile changes one profile field.
//
//	profile name Alice Candy
//	profile picture      (clears it)
//	profile password
//	profile deactivate
func (a *App) Profile(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New(profileUsage)
	}

	field, value := args[0], strings.Join(args[1:], " ")
	var patch models.ProfilePatch

	switch field {
	case "password":
		pw, err := getPassword("New password", a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(pw)
		s := string(pw)
		patch.Password = &s
	case "picture":
		if value == "" {
			patch.ClearProfilePicture = true
		} else {
			patch.ProfilePicture = &value
		}
	case "deactivate":
		off := false
		patch.IsActive = &off
	case "name", "email", "username":
		if value == "" {
			return errors.New(profileUsage)
		}
		switch field {
		case "name":
			patch.Name = &value
		case "email":
			patch.Email = &value
		case "username":
			patch.Username = &value
		}
	default:
		return fmt.Errorf("unknown profile field %q; %s", field, profileUsage)
	}

	if _, err := a.accounts.UpdateProfile(ctx, patch); err != nil {
		return err
	}
	a.println("Profile updated.")
	return nil
}
