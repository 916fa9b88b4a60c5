// petcli ejercita la lib contra un backend (real o devbackend) y el store
// local, igual que lo haría la app que la embebe. Pensado para desarrollo
// y debugging, no para usuarios finales.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pet-community-client/internal/adapters/session"
	"pet-community-client/internal/domain/healthrecords"
	"pet-community-client/internal/domain/pets"
	"pet-community-client/internal/domain/records"
	"pet-community-client/internal/platform/config"
	"pet-community-client/internal/platform/httpclient"
	"pet-community-client/internal/platform/logger"
	"pet-community-client/internal/platform/storage/kv"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "petcli",
		Short:         "Cliente de línea de comandos para el backend de pet-community",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newPetsCmd(), newRecordsCmd())
	return root
}

// app arma el mismo wiring que usaría la app host: config por env,
// store local, sesión sobre el store y transport autenticado.
type app struct {
	log    logger.Logger
	client *httpclient.Client
	pets   *pets.Service
	health *healthrecords.Service
}

func newApp() (*app, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	lg := logger.NewFromEnv()

	var store kv.Store
	if cfg.StoragePath != "" {
		sq, err := kv.OpenSQLite(cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		store = sq
	} else {
		store = kv.NewMemory()
	}

	sess := session.New(store, lg)
	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
		Session: sess,
		Logger:  lg,
	})
	if err != nil {
		return nil, err
	}

	health := healthrecords.NewService(store, lg)
	return &app{
		log:    lg,
		client: client,
		pets:   pets.NewService(store, health, lg),
		health: health,
	}, nil
}

func newPetsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "pets", Short: "Mascotas del store local"}

	var owner string
	list := &cobra.Command{
		Use:   "list",
		Short: "Lista las mascotas de un dueño",
		RunE: func(c *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return printJSON(a.pets.GetPetsByOwner(c.Context(), owner))
		},
	}
	list.Flags().StringVar(&owner, "owner", "", "id del dueño")
	_ = list.MarkFlagRequired("owner")

	var in pets.AddInput
	var gender string
	add := &cobra.Command{
		Use:   "add",
		Short: "Registra una mascota",
		RunE: func(c *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			in.Gender = pets.Gender(gender)
			p, err := a.pets.AddPet(c.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(p)
		},
	}
	add.Flags().StringVar(&in.OwnerID, "owner", "", "id del dueño")
	add.Flags().StringVar(&in.Name, "name", "", "nombre")
	add.Flags().IntVar(&in.Age, "age", 0, "edad en años")
	add.Flags().StringVar(&gender, "gender", "", "erkek|dişi")
	add.Flags().StringVar(&in.Species, "species", "", "especie (kedi, köpek, ...)")
	add.Flags().StringVar(&in.Breed, "breed", "", "raza")
	_ = add.MarkFlagRequired("owner")
	_ = add.MarkFlagRequired("name")

	del := &cobra.Command{
		Use:   "delete <petID>",
		Short: "Borra una mascota y su historial (irreversible)",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if !a.pets.DeletePet(c.Context(), args[0]) {
				return errors.New("pet not deleted")
			}
			fmt.Println("deleted")
			return nil
		},
	}

	cmd.AddCommand(list, add, del)
	return cmd
}

func newRecordsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "records", Short: "Registros médicos remotos"}

	var petID string
	list := &cobra.Command{
		Use:   "list <kind>",
		Short: "Lista registros de un tipo (vaccines, treatments, appointments, medications, allergies, weights)",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			out, err := a.listRecords(c.Context(), args[0], petID)
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	list.Flags().StringVar(&petID, "pet", "", "id del pet")
	_ = list.MarkFlagRequired("pet")

	var addPet string
	var form recordForm
	add := &cobra.Command{
		Use:   "add <kind>",
		Short: "Crea un registro del tipo indicado",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			out, err := a.addRecord(c.Context(), args[0], addPet, form)
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	add.Flags().StringVar(&addPet, "pet", "", "id del pet")
	_ = add.MarkFlagRequired("pet")
	// Superset de campos; cada kind toma los suyos
	add.Flags().StringVar(&form.Name, "name", "", "nombre (vaccines, treatments, medications)")
	add.Flags().StringVar(&form.Title, "title", "", "título (appointments)")
	add.Flags().StringVar(&form.Date, "date", "", "fecha")
	add.Flags().StringVar(&form.Time, "time", "", "hora (appointments)")
	add.Flags().StringVar(&form.Clinic, "clinic", "", "clínica (appointments)")
	add.Flags().StringVar(&form.Notes, "notes", "", "notas (appointments, allergies)")
	add.Flags().StringVar(&form.Description, "description", "", "descripción (treatments)")
	add.Flags().StringVar(&form.Veterinarian, "vet", "", "veterinario (vaccines, treatments)")
	add.Flags().StringVar(&form.Dosage, "dosage", "", "dosis (medications)")
	add.Flags().StringVar(&form.Frequency, "frequency", "", "frecuencia (medications)")
	add.Flags().StringVar(&form.StartDate, "start", "", "fecha de inicio (medications)")
	add.Flags().StringVar(&form.EndDate, "end", "", "fecha de fin (medications)")
	add.Flags().StringVar(&form.Allergen, "allergen", "", "alérgeno (allergies)")
	add.Flags().StringVar(&form.Severity, "severity", "", "severidad (allergies)")
	add.Flags().StringVar(&form.Reaction, "reaction", "", "reacción (allergies)")
	add.Flags().Float64Var(&form.Weight, "weight", 0, "peso (weights)")
	add.Flags().StringVar(&form.Unit, "unit", "", "unidad de peso (weights)")

	var delPet string
	del := &cobra.Command{
		Use:   "delete <kind> <recordID>",
		Short: "Borra un registro (best-effort)",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if !a.deleteRecord(c.Context(), args[0], delPet, args[1]) {
				return errors.New("record not deleted")
			}
			fmt.Println("deleted")
			return nil
		},
	}
	del.Flags().StringVar(&delPet, "pet", "", "id del pet")
	_ = del.MarkFlagRequired("pet")

	cmd.AddCommand(list, add, del)
	return cmd
}

// recordForm junta los campos de todos los Forms; addRecord reparte
// los que corresponden a cada kind.
type recordForm struct {
	Name         string
	Title        string
	Date         string
	Time         string
	Clinic       string
	Notes        string
	Description  string
	Veterinarian string
	Dosage       string
	Frequency    string
	StartDate    string
	EndDate      string
	Allergen     string
	Severity     string
	Reaction     string
	Weight       float64
	Unit         string
}

func (a *app) listRecords(ctx context.Context, kind, petID string) (any, error) {
	switch kind {
	case "vaccines":
		return records.NewVaccinationService(a.client, a.log).List(ctx, petID)
	case "treatments":
		return records.NewTreatmentService(a.client, a.log).List(ctx, petID)
	case "appointments":
		return records.NewAppointmentService(a.client, a.log).List(ctx, petID)
	case "medications":
		return records.NewMedicationService(a.client, a.log).List(ctx, petID)
	case "allergies":
		return records.NewAllergyService(a.client, a.log).List(ctx, petID)
	case "weights":
		return records.NewWeightRecordService(a.client, a.log).List(ctx, petID)
	}
	return nil, fmt.Errorf("unknown record kind %q", kind)
}

func (a *app) addRecord(ctx context.Context, kind, petID string, f recordForm) (any, error) {
	switch kind {
	case "vaccines":
		return records.NewVaccinationService(a.client, a.log).Add(ctx, petID, records.VaccinationForm{
			Name: f.Name, Date: f.Date, Veterinarian: f.Veterinarian,
		})
	case "treatments":
		return records.NewTreatmentService(a.client, a.log).Add(ctx, petID, records.TreatmentForm{
			Name: f.Name, Date: f.Date, Description: f.Description, Veterinarian: f.Veterinarian,
		})
	case "appointments":
		return records.NewAppointmentService(a.client, a.log).Add(ctx, petID, records.AppointmentForm{
			Title: f.Title, Date: f.Date, Time: f.Time, Clinic: f.Clinic, Notes: f.Notes,
		})
	case "medications":
		return records.NewMedicationService(a.client, a.log).Add(ctx, petID, records.MedicationForm{
			Name: f.Name, Dosage: f.Dosage, Frequency: f.Frequency,
			StartDate: f.StartDate, EndDate: f.EndDate,
		})
	case "allergies":
		return records.NewAllergyService(a.client, a.log).Add(ctx, petID, records.AllergyForm{
			Allergen: f.Allergen, Severity: f.Severity, Reaction: f.Reaction, Notes: f.Notes,
		})
	case "weights":
		return records.NewWeightRecordService(a.client, a.log).Add(ctx, petID, records.WeightRecordForm{
			Weight: f.Weight, Unit: f.Unit, Date: f.Date,
		})
	}
	return nil, fmt.Errorf("unknown record kind %q", kind)
}

func (a *app) deleteRecord(ctx context.Context, kind, petID, recordID string) bool {
	switch kind {
	case "vaccines":
		return records.NewVaccinationService(a.client, a.log).Delete(ctx, petID, recordID)
	case "treatments":
		return records.NewTreatmentService(a.client, a.log).Delete(ctx, petID, recordID)
	case "appointments":
		return records.NewAppointmentService(a.client, a.log).Delete(ctx, petID, recordID)
	case "medications":
		return records.NewMedicationService(a.client, a.log).Delete(ctx, petID, recordID)
	case "allergies":
		return records.NewAllergyService(a.client, a.log).Delete(ctx, petID, recordID)
	case "weights":
		return records.NewWeightRecordService(a.client, a.log).Delete(ctx, petID, recordID)
	}
	return false
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
