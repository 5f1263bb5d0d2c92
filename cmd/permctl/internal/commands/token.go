package commands

import (
	"context"
	"fmt"

	"github.com/jhoicas/Agenda-api/pkg/jwt"
)

type TokenCmd struct {
	User       string `help:"ID del usuario" default:"00000000-0000-0000-0000-000000000001"`
	Company    string `help:"ID de la empresa" required:""`
	Role       string `help:"Rol" default:"owner" enum:"owner,employee,customer,admin"`
	Secret     string `help:"Secreto HS256" required:"" env:"JWT_SECRET"`
	Issuer     string `help:"Issuer" default:"agenda-api"`
	ExpMinutes int    `help:"Vigencia en minutos" default:"60"`
}

func (t *TokenCmd) Run(ctx context.Context) error {
	token, err := jwt.Generate(t.Secret, t.User, t.Company, t.Role, t.Issuer, t.ExpMinutes)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
