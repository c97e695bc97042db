package cli

import (
	"context"
	"fmt"
	"strconv"

	"libmatch/internal/auth"
)

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", outWriter)
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.reader, "Enter name", outWriter)
	if err != nil {
		return err
	}
	ageText, err := GetSimpleText(a.reader, "Enter age", outWriter)
	if err != nil {
		return err
	}
	age, err := strconv.Atoi(ageText)
	if err != nil {
		printlnFn("Age must be a number")
		return err
	}
	password, err := GetPassword(outWriter, "Enter password")
	if err != nil {
		return err
	}
	confirm, err := GetPassword(outWriter, "Confirm password")
	if err != nil {
		return err
	}

	user, err := a.coordinator.Register(ctx, auth.RegisterData{
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
		Name:            name,
		Age:             age,
	})
	if err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s! Your account id is %s", name, user.ID))
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", outWriter)
	if err != nil {
		return err
	}
	password, err := GetPassword(outWriter, "Enter password")
	if err != nil {
		return err
	}

	user, err := a.coordinator.Login(ctx, auth.Credentials{Email: email, Password: password})
	if err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	printlnFn("Logged in as", user.Email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.coordinator.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	printlnFn("Logged out")
	return nil
}
