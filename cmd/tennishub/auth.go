package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/timur/tennis-hub/internal/domain"
	"github.com/timur/tennis-hub/internal/session"
)

func (a *app) cmdLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" {
		*username = prompt("Username: ")
	}
	if *password == "" {
		*password = prompt("Password: ")
	}

	if err := a.session.Login(context.Background(), *username, *password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	current, _ := a.session.Current()
	fmt.Printf("Signed in as %s\n", current.User.FullName())
	return nil
}

func (a *app) cmdRegister(args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	email := fs.String("email", "", "email address")
	firstName := fs.String("first", "", "first name")
	lastName := fs.String("last", "", "last name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" {
		*username = prompt("Username: ")
	}
	if *password == "" {
		*password = prompt("Password: ")
	}
	if *email == "" {
		*email = prompt("Email: ")
	}

	input := domain.RegisterInput{
		Username:  *username,
		Password:  *password,
		Email:     *email,
		FirstName: *firstName,
		LastName:  *lastName,
	}
	if err := a.session.Register(context.Background(), input); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Printf("Account created, signed in as %s\n", *username)
	return nil
}

func (a *app) cmdLogout(args []string) error {
	a.session.Logout()
	fmt.Println("Signed out.")
	return nil
}

func (a *app) cmdWhoami(args []string) error {
	current, ok := a.session.Current()
	if !ok {
		fmt.Println("Not signed in.")
		return nil
	}

	fmt.Printf("Signed in as %s (%s)\n", current.User.FullName(), current.User.Username)
	if current.User.Email != "" {
		fmt.Printf("Email: %s\n", current.User.Email)
	}
	if exp, ok := session.TokenExpiry(current.AccessToken); ok {
		if time.Now().After(exp) {
			fmt.Printf("Access token expired %s (will refresh on next request)\n", exp.Format(time.RFC3339))
		} else {
			fmt.Printf("Access token valid until %s\n", exp.Format(time.RFC3339))
		}
	}
	return nil
}

func (a *app) cmdProfile(args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	firstName := fs.String("first", "", "set first name")
	lastName := fs.String("last", "", "set last name")
	email := fs.String("email", "", "set email")
	language := fs.String("lang", "", "set profile language")
	notify := fs.String("notify", "", "enable notifications (true/false)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, ok := a.session.Current(); !ok {
		return domain.ErrNotAuthenticated
	}

	ctx := context.Background()
	update := domain.ProfileUpdate{}
	changed := false
	if *firstName != "" {
		update.FirstName = firstName
		changed = true
	}
	if *lastName != "" {
		update.LastName = lastName
		changed = true
	}
	if *email != "" {
		update.Email = email
		changed = true
	}
	if *language != "" {
		update.Language = language
		changed = true
	}
	if *notify != "" {
		enabled := *notify == "true"
		update.NotificationsEnabled = &enabled
		changed = true
	}

	var profile *domain.Profile
	var err error
	if changed {
		profile, err = a.client.UpdateProfile(ctx, update)
	} else {
		profile, err = a.client.FetchProfile(ctx)
	}
	if err != nil {
		return err
	}
	if profile == nil {
		fmt.Println("No profile on record.")
		return nil
	}

	// Keep the cached user record in step with the backend.
	if err := a.session.StoreUser(profile.User); err != nil {
		a.log.Warn().Err(err).Msg("[cli.profile] failed to cache updated user")
	}

	fmt.Printf("Username:       %s\n", profile.User.Username)
	fmt.Printf("Name:           %s\n", profile.User.FullName())
	fmt.Printf("Email:          %s\n", profile.User.Email)
	fmt.Printf("Language:       %s\n", profile.Language)
	fmt.Printf("Notifications:  %t\n", profile.NotificationsEnabled)
	return nil
}

func (a *app) cmdPrefs(args []string) error {
	fs := flag.NewFlagSet("prefs", flag.ExitOnError)
	dark := fs.String("dark", "", "dark mode (true/false)")
	language := fs.String("lang", "", "preferred language code")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *dark != "" {
		if err := a.session.SetDarkMode(*dark == "true"); err != nil {
			return err
		}
	}
	if *language != "" {
		if err := a.session.SetLanguage(*language); err != nil {
			return err
		}
	}

	fmt.Printf("Dark mode: %t\n", a.session.DarkMode())
	fmt.Printf("Language:  %s\n", a.session.Language())
	return nil
}

func prompt(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
