package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alertemedicaments/prescription-scan/internal/core/catalog"
	"github.com/alertemedicaments/prescription-scan/internal/core/medication"
	"github.com/alertemedicaments/prescription-scan/internal/core/ocr"
	"github.com/alertemedicaments/prescription-scan/internal/core/prescription"
	"github.com/alertemedicaments/prescription-scan/internal/core/scan"
	"github.com/alertemedicaments/prescription-scan/internal/core/session"
	"github.com/alertemedicaments/prescription-scan/internal/shared/config"
	"github.com/alertemedicaments/prescription-scan/internal/shared/database"
	"github.com/alertemedicaments/prescription-scan/internal/shared/utils"
)

func main() {
	var (
		login    bool
		register bool
		logout   bool
		watch    string
		unwatch  string
		nearby   string
		report   string
		remote   bool
		alerts   bool
		textOnly bool
		export   bool
		deleteMe bool
	)

	flag.BoolVar(&login, "login", false, "Log in: scan -login <email> <password>")
	flag.BoolVar(&register, "register", false, "Create an account: scan -register <name> <email> <password>")
	flag.BoolVar(&logout, "logout", false, "Forget the stored session")
	flag.StringVar(&watch, "watch", "", "Create an alert for the given medication ID")
	flag.StringVar(&unwatch, "unwatch", "", "Delete the alert with the given ID")
	flag.BoolVar(&remote, "remote", false, "Send the photo to the server-side scanner instead of local OCR")
	flag.BoolVar(&alerts, "alerts", false, "List the logged-in user's alerts")
	flag.StringVar(&nearby, "pharmacies", "", "List pharmacies reporting on the given medication ID")
	flag.StringVar(&report, "report", "", "Report stock: <pharmacyID>:<medicationID>:<AVAILABLE|TENSION|RUPTURE>")
	flag.BoolVar(&export, "export", false, "Save the account's data: scan -export [file]")
	flag.BoolVar(&deleteMe, "delete-account", false, "Delete the account: scan -delete-account <password> '"+catalog.DeleteConfirmPhrase+"'")
	flag.BoolVar(&textOnly, "text", false, "Treat the argument as a text file of OCR output and skip recognition")
	flag.Parse()

	cfg := config.LoadConfig()
	utils.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.SessionDBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to open session database")
	}
	defer db.Close()

	store, err := session.NewStore(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to init session store")
	}
	client := catalog.NewClient(cfg.APIBaseURL, catalog.WithTokenSource(store))

	switch {
	case login:
		if flag.NArg() != 2 {
			log.Fatal().Msg("❌ Usage: scan -login <email> <password>")
		}
		err = runAuth(ctx, store, func() (*catalog.AuthResponse, error) {
			return client.Login(ctx, flag.Arg(0), flag.Arg(1))
		})
	case register:
		if flag.NArg() != 3 {
			log.Fatal().Msg("❌ Usage: scan -register <name> <email> <password>")
		}
		err = runAuth(ctx, store, func() (*catalog.AuthResponse, error) {
			return client.Register(ctx, flag.Arg(0), flag.Arg(1), flag.Arg(2))
		})
	case logout:
		err = store.Clear(ctx)
		if err == nil {
			fmt.Println("Déconnecté")
		}
	case alerts:
		err = runAlerts(ctx, client)
	case export:
		err = runExport(ctx, client, flag.Arg(0))
	case deleteMe:
		if flag.NArg() != 2 {
			log.Fatal().Msg("❌ Usage: scan -delete-account <password> '" + catalog.DeleteConfirmPhrase + "'")
		}
		err = client.DeleteAccount(ctx, flag.Arg(0), flag.Arg(1))
		if err == nil {
			err = store.Clear(ctx)
		}
		if err == nil {
			fmt.Println("Compte supprimé")
		}
	case watch != "":
		var alert *medication.Alert
		alert, err = client.CreateAlert(ctx, catalog.NewAlertRequest(watch))
		if err == nil {
			fmt.Printf("Alerte créée: %s\n", alert.ID)
		}
	case unwatch != "":
		var deleted bool
		deleted, err = client.DeleteAlert(ctx, unwatch)
		if err == nil && deleted {
			fmt.Println("Alerte supprimée")
		}
	case nearby != "":
		err = runPharmacies(ctx, client, nearby)
	case report != "":
		err = runReport(ctx, client, report)
	case flag.NArg() != 1:
		fmt.Fprintln(os.Stderr, "Usage: scan [-remote|-text] <image>")
		flag.PrintDefaults()
		os.Exit(2)
	case remote:
		err = runRemote(ctx, client, flag.Arg(0))
	case textOnly:
		err = runText(ctx, client, flag.Arg(0))
	default:
		err = runLocal(ctx, cfg, client, flag.Arg(0))
	}

	if err != nil {
		var apiErr *catalog.APIError
		switch {
		case errors.As(err, &apiErr):
			log.Error().Int("status", apiErr.StatusCode).Msg("❌ " + apiErr.Message)
		case errors.Is(err, catalog.ErrConfirmPhrase):
			log.Error().Msg("❌ Tapez '" + catalog.DeleteConfirmPhrase + "' pour confirmer")
		case errors.Is(err, catalog.ErrUnauthenticated):
			log.Error().Msg("❌ Not logged in, run: scan -login <email> <password>")
		default:
			utils.LogError("❌ Command failed", err, nil)
		}
		os.Exit(1)
	}
}

func runAuth(ctx context.Context, store *session.Store, authenticate func() (*catalog.AuthResponse, error)) error {
	auth, err := authenticate()
	if err != nil {
		return err
	}
	if err := store.SaveSession(ctx, auth); err != nil {
		return err
	}
	name := auth.User.Name
	if name == "" {
		name = auth.User.Email
	}
	fmt.Printf("Connecté en tant que %s\n", name)
	return nil
}

func runAlerts(ctx context.Context, client *catalog.Client) error {
	alerts, err := client.Alerts(ctx)
	if err != nil {
		return err
	}
	if len(alerts) == 0 {
		fmt.Println("Aucune alerte")
		return nil
	}
	for _, a := range alerts {
		name := a.MedicationID
		status := ""
		if a.Medication != nil {
			name = a.Medication.Name
			status = a.Medication.Status.DisplayName()
		}
		fmt.Printf("%s\t%s\t%s\n", a.ID, name, status)
	}
	return nil
}

func runExport(ctx context.Context, client *catalog.Client, path string) error {
	data, err := client.ExportUserData(ctx)
	if err != nil {
		return err
	}
	if path == "" {
		path = "alertemedicaments_export_" + time.Now().Format("2006-01-02_15-04-05") + ".json"
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Données exportées vers: %s\n", path)
	return nil
}

func runPharmacies(ctx context.Context, client *catalog.Client, medicationID string) error {
	res, err := client.NearbyPharmacies(ctx, medicationID, nil, 0)
	if err != nil {
		return err
	}
	for _, p := range res.Pharmacies {
		status := medication.StatusUnknown
		if p.Availability != nil {
			status = p.Availability.Status
		}
		fmt.Printf("%s\t%s\t%s\n", p.Name, p.FullAddress(), status.DisplayName())
	}
	return nil
}

func runReport(ctx context.Context, client *catalog.Client, arg string) error {
	parts := strings.Split(arg, ":")
	if len(parts) != 3 {
		return fmt.Errorf("invalid report %q, want <pharmacyID>:<medicationID>:<status>", arg)
	}
	status := medication.ParseStatus(parts[2])
	if status == medication.StatusUnknown {
		return fmt.Errorf("unknown status %q", parts[2])
	}
	if err := client.ReportAvailability(ctx, parts[0], parts[1], status); err != nil {
		return err
	}
	fmt.Printf("Merci, %s signalé\n", status.DisplayName())
	return nil
}

func runLocal(ctx context.Context, cfg *config.Config, client *catalog.Client, path string) error {
	imageData, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	provider, err := ocr.NewProvider(ocr.Options{
		Provider:           cfg.OCRProvider,
		OCRSpaceAPIKey:     cfg.OCRSpaceAPIKey,
		GoogleVisionAPIKey: cfg.GoogleVisionAPIKey,
		TesseractLanguage:  cfg.TesseractLanguage,
	})
	if err != nil {
		return err
	}
	log.Debug().Str("provider", provider.GetProviderName()).Msg("🔍 OCR provider selected")

	scanner := scan.NewScanner(ocr.NewService(provider, cfg.OCRMaxDimension), client)
	state := scanner.Run(ctx, imageData)
	printState(state)
	if state.Phase == scan.PhaseError {
		return state.Err
	}
	return nil
}

// runText runs extraction and resolution on already recognized text.
func runText(ctx context.Context, client *catalog.Client, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read text: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return ocr.ErrNoTextDetected
	}

	candidates := prescription.Extract(string(data))
	matches := prescription.NewResolver(client).Resolve(ctx, candidates)
	printState(scan.State{Candidates: candidates, Matches: matches})
	return nil
}

func runRemote(ctx context.Context, client *catalog.Client, path string) error {
	imageData, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	meds, err := client.ScanPrescription(ctx, filepath.Base(path), imageData)
	if err != nil {
		return err
	}
	if len(meds) == 0 {
		fmt.Println(scan.MessageNoMatches)
		return nil
	}
	for _, m := range meds {
		line := m.Name
		if m.Dosage != "" {
			line += " " + m.Dosage
		}
		if m.Matched != nil {
			line += fmt.Sprintf("\t-> %s (%s)", m.Matched.Name, m.Matched.Status.DisplayName())
		}
		fmt.Println(line)
	}
	return nil
}

func printState(state scan.State) {
	if state.Phase == scan.PhaseError {
		fmt.Fprintln(os.Stderr, state.Error)
		return
	}

	fmt.Printf("Candidats (%d):\n", len(state.Candidates))
	for _, c := range state.Candidates {
		fmt.Printf("  - %s\n", c)
	}

	if len(state.Matches) == 0 {
		fmt.Println(scan.MessageNoMatches)
		return
	}
	fmt.Printf("Médicaments (%d):\n", len(state.Matches))
	for _, m := range state.Matches {
		fmt.Printf("  %s\t%s\t%s\n", m.ID, m.Name, m.Status.DisplayName())
	}
}
