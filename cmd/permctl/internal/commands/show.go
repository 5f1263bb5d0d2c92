package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jhoicas/Agenda-api/pkg/modules"
)

type ShowCmd struct {
	Company string `help:"ID de la empresa" required:""`
	JSON    bool   `help:"Imprime la instantánea en JSON"`
}

func (s *ShowCmd) Run(ctx context.Context, globals *Globals) error {
	store := globals.store(s.Company, globals.logger())
	if err := store.Start(ctx); err != nil {
		return fmt.Errorf("cargar permisos: %w", err)
	}
	snap, _ := store.Snapshot()

	if s.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	printSnapshot(snap, modules.MatchLanguage(globals.Lang))
	return nil
}

func printSnapshot(p modules.Permissions, lang string) {
	fmt.Printf("empresa: %s\nsuscripción: %s\n\n", p.CompanyID, p.Subscription.Status)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MÓDULO\tNOMBRE\tHABILITADO\tPLAN MÍNIMO")
	for _, m := range modules.AllModules() {
		e := modules.Describe(m)
		fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", m, e.Name(lang), p.Has(m), modules.TierLabel(modules.MinimumRequiredTier(m), lang))
	}
	_ = w.Flush()
}
