package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/iljicevs/eduportal/core/settings"
)

func (cli *commandLine) setMaintenance(on bool) error {
	ctx := context.Background()
	ss, err := cli.settingsRepo.GetSiteSettings(ctx)
	if err != nil {
		if errors.Cause(err) != settings.ErrNotFound {
			return err
		}
		ss = settings.Default()
	}
	ss.MaintenanceMode = on
	return cli.settingsRepo.SaveSiteSettings(ctx, &ss)
}
