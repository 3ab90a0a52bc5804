package main

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"

	"pet-house/internal/domain/assistant"
	"pet-house/internal/domain/pets"

	"github.com/spf13/cobra"
)

type reminderView struct {
	ID        string `json:"id"`
	PetID     string `json:"petId"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Overdue   bool   `json:"overdue"`
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// -------------------------
// pets
// -------------------------

func (a *app) petsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "pets", Short: "Mascotas"}

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista las mascotas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out []pets.Pet
			if err := a.client.Get(cmd.Context(), "/pets", nil, &out); err != nil {
				return err
			}
			tw := table(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME\tSPECIES\tGENDER\tVACCINES")
			for _, p := range out {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Species, p.Gender, len(p.Vaccines))
			}
			return tw.Flush()
		},
	}

	var (
		name, species, gender, breed, birthdate string
		weight                                  float64
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Da de alta una mascota",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"name":      name,
				"species":   species,
				"gender":    gender,
				"breed":     breed,
				"birthdate": birthdate,
			}
			if cmd.Flags().Changed("weight") {
				body["weight"] = weight
			}
			var p pets.Pet
			if err := a.client.Post(cmd.Context(), "/pets", body, &p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.ID)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "Nombre (requerido)")
	add.Flags().StringVar(&species, "species", "dog", "dog | cat | other")
	add.Flags().StringVar(&gender, "gender", "", "male | female (requerido)")
	add.Flags().StringVar(&breed, "breed", "", "Raza")
	add.Flags().StringVar(&birthdate, "birthdate", "", "YYYY-MM-DD")
	add.Flags().Float64Var(&weight, "weight", 0, "Peso en kg")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("gender")

	del := &cobra.Command{
		Use:   "delete <petID>",
		Short: "Elimina una mascota y sus recordatorios",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Delete(cmd.Context(), "/pets/"+url.PathEscape(args[0])); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}

	cmd.AddCommand(list, add, del)
	return cmd
}

// -------------------------
// vaccines
// -------------------------

func (a *app) vaccinesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "vaccines", Short: "Carnet de vacunas"}

	var sortKey, dir string
	list := &cobra.Command{
		Use:   "list <petID>",
		Short: "Muestra el carnet de una mascota",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out []pets.Vaccine
			q := url.Values{"sort": {sortKey}, "dir": {dir}}
			if err := a.client.Get(cmd.Context(), "/pets/"+url.PathEscape(args[0])+"/vaccines", q, &out); err != nil {
				return err
			}
			tw := table(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME\tDATE\tNEXT")
			for _, v := range out {
				next := "-"
				if v.HasNextDate() {
					next = *v.NextDate
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.ID, v.Name, v.Date, next)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&sortKey, "sort", "", "name | date | nextDate (vacío: orden de alta)")
	list.Flags().StringVar(&dir, "dir", "desc", "asc | desc")

	var name, date, nextDate, vet, notes string
	add := &cobra.Command{
		Use:   "add <petID>",
		Short: "Registra una vacuna (con --next-date crea el recordatorio)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"name":         name,
				"date":         date,
				"veterinarian": vet,
				"notes":        notes,
			}
			if nextDate != "" {
				body["nextDate"] = nextDate
			}
			var v pets.Vaccine
			if err := a.client.Post(cmd.Context(), "/pets/"+url.PathEscape(args[0])+"/vaccines", body, &v); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.ID)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "Vacuna (requerido)")
	add.Flags().StringVar(&date, "date", "", "Fecha de aplicación YYYY-MM-DD (requerido)")
	add.Flags().StringVar(&nextDate, "next-date", "", "Próxima dosis YYYY-MM-DD")
	add.Flags().StringVar(&vet, "vet", "", "Veterinario")
	add.Flags().StringVar(&notes, "notes", "", "Notas")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("date")

	cmd.AddCommand(list, add)
	return cmd
}

// -------------------------
// reminders
// -------------------------

func (a *app) remindersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "reminders", Short: "Recordatorios"}

	var status, petID string
	list := &cobra.Command{
		Use:   "list",
		Short: "Lista recordatorios ordenados por fecha",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{"status": {status}}
			if petID != "" {
				q.Set("pet_id", petID)
			}
			var out []reminderView
			if err := a.client.Get(cmd.Context(), "/reminders", q, &out); err != nil {
				return err
			}
			return printReminders(cmd.OutOrStdout(), out)
		},
	}
	list.Flags().StringVar(&status, "status", "all", "all | pending | completed")
	list.Flags().StringVar(&petID, "pet", "", "Filtra por mascota")

	complete := &cobra.Command{
		Use:   "complete <reminderID>",
		Short: "Marca un recordatorio como completado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r reminderView
			if err := a.client.Post(cmd.Context(), "/reminders/"+url.PathEscape(args[0])+"/complete", nil, &r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "completed %s\n", r.ID)
			return nil
		},
	}

	derive := &cobra.Command{
		Use:   "derive",
		Short: "Genera los recordatorios de próxima dosis que falten",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out []reminderView
			if err := a.client.Post(cmd.Context(), "/reminders/derive", nil, &out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d reminder(s) created\n", len(out))
			return nil
		},
	}

	cmd.AddCommand(list, complete, derive)
	return cmd
}

func printReminders(w io.Writer, rs []reminderView) error {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tTITLE\tSTATUS")
	for _, r := range rs {
		st := "pending"
		switch {
		case r.Completed:
			st = "done"
		case r.Overdue:
			st = "OVERDUE"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Date, r.Type, r.Title, st)
	}
	return tw.Flush()
}

// -------------------------
// assistant
// -------------------------

func (a *app) askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <mensaje...>",
		Short: "Pregunta al asistente de síntomas",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var reply assistant.Reply
			body := map[string]string{"message": strings.Join(args, " ")}
			if err := a.client.Post(cmd.Context(), "/assistant/messages", body, &reply); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, reply.Message.Content)
			for _, q := range reply.FollowUps {
				fmt.Fprintf(w, "  - %s\n", q)
			}
			return nil
		},
	}
}
