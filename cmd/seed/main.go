// Command seed creates one user per role and prints a bearer token for each.
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/company-sys/backend/internal/auth"
	"github.com/company-sys/backend/internal/bootstrap"
	"github.com/company-sys/backend/internal/infra/db"
	"github.com/company-sys/backend/internal/modules/model"
	"github.com/company-sys/backend/internal/modules/repo"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var seedUsers = []model.User{
	{Username: "admin", Email: "admin@company.local", Role: model.RoleAdmin},
	{Username: "ceo", Email: "ceo@company.local", Role: model.RoleCEO},
	{Username: "pm1", Email: "pm1@company.local", Role: model.RolePM},
	{Username: "dev1", Email: "dev1@company.local", Role: model.RoleDeveloper},
}

func main() {
	inj := bootstrap.BuildContainer()
	log := do.MustInvoke[*zap.Logger](inj)
	gdb := do.MustInvoke[*gorm.DB](inj)
	users := do.MustInvoke[repo.UserRepo](inj)
	tokens := do.MustInvoke[*auth.Tokens](inj)

	if err := db.Migrate(gdb); err != nil {
		log.Sugar().Fatalw("migrate", "err", err)
	}

	ctx := context.Background()
	for _, seed := range seedUsers {
		u, err := users.GetByUsername(ctx, seed.Username)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			u = &seed
			err = users.Create(ctx, u)
		}
		if err != nil {
			log.Sugar().Fatalw("seed user", "username", seed.Username, "err", err)
		}

		token, err := tokens.Generate(u.ID)
		if err != nil {
			log.Sugar().Fatalw("issue token", "username", u.Username, "err", err)
		}
		fmt.Printf("%-6s %-5s Bearer %s\n", u.Username, u.Role, token)
	}
}
