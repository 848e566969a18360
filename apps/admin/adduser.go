package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/iljicevs/eduportal/core"
	"github.com/iljicevs/eduportal/core/user"
)

// addUser updates or creates an active user with the given role.
func (cli *commandLine) addUser(uname, email, pwd, role string) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	usr, err := cli.usrRepo.GetUserByUsernameOrEmail(ctx, uname)
	if err != nil {
		if errors.Cause(err) != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Username: uname,
			Email:    email,
		}
	}
	usr.Role = role
	usr.IsActive = true
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	_, err = cli.usrRepo.UpdateOrCreateUser(ctx, usr)
	return err
}
