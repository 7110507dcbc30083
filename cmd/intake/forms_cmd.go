package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newFormsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List available forms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			if store.Empty() {
				fmt.Fprintln(a.out, "No forms found.")
				return nil
			}
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, id := range store.IDs() {
				form, _ := store.Form(id)
				fmt.Fprintf(w, "%s\t%s\t%d fields\n", id, form.Title, len(form.Fields))
			}
			return w.Flush()
		},
	}
}
