// Command cli is the console client: it runs a booking conversation in the
// terminal against a running DineVoice server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dinevoice/config"
	"dinevoice/models"
	"dinevoice/services/booking"
	"dinevoice/services/conversation"
	"dinevoice/services/events"
	ai "dinevoice/services/intelligence"
	"dinevoice/services/notification"
	"dinevoice/services/weather"
	"dinevoice/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	apiURL        string
	locale        string
	phone         string
	email         string
	listenTimeout time.Duration
	notify        bool
	verbose       bool
	natsURL       string
	date          string
}

func main() {
	config.LoadConfig()
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "dinevoice",
		Short:         "Book a table by talking to the DineVoice agent",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTalk(cmd.Context(), opts)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.apiURL, "api", config.AppConfig.APIBaseURL, "DineVoice server base URL")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	f := root.Flags()
	f.StringVar(&opts.locale, "locale", config.AppConfig.DefaultLocale, "conversation language (en-IN or hi-IN)")
	f.StringVar(&opts.phone, "phone", "", "phone number for the SMS confirmation")
	f.StringVar(&opts.email, "email", "", "address for the email confirmation")
	f.DurationVar(&opts.listenTimeout, "listen-timeout", config.ListenTimeout(), "how long to wait for each answer")
	f.BoolVar(&opts.notify, "notify", false, "send confirmations from this process using the configured channels")

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Print booking confirmations as they happen",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd.Context(), opts)
		},
	}
	watch.Flags().StringVar(&opts.natsURL, "nats", config.AppConfig.NatsURL, "NATS server URL")

	availability := &cobra.Command{
		Use:   "availability",
		Short: "List open slots for a date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAvailability(cmd.Context(), opts)
		},
	}
	availability.Flags().StringVar(&opts.date, "date", time.Now().Format("2006-01-02"), "date as YYYY-MM-DD")

	root.AddCommand(watch, availability)
	return root
}

func newLogger(verbose bool) *zap.Logger {
	logger := utils.GetLogger()
	if verbose {
		return logger
	}
	return logger.WithOptions(zap.IncreaseLevel(zapcore.WarnLevel))
}

func runTalk(parent context.Context, opts *options) error {
	logger := newLogger(opts.verbose)
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	speech := newTerminalSpeech(os.Stdin, os.Stdout)
	stop := conversation.NewStopToken()

	// First Ctrl-C stops after the current step; a second one aborts.
	sig := make(chan os.Signal, 2)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	go func() {
		select {
		case <-sig:
			fmt.Fprintln(os.Stderr, "\nstopping after this step, press Ctrl-C again to quit now")
			stop.Stop()
		case <-speech.eof:
			stop.Stop()
			return
		case <-ctx.Done():
			return
		}
		select {
		case <-sig:
			cancel()
		case <-ctx.Done():
		}
	}()

	open, closing, duration := config.Hours()
	negotiator := booking.NewNegotiator(
		booking.NewRemoteStore(opts.apiURL),
		booking.Hours{Open: open, Close: closing, DurationMinutes: duration},
		config.AppConfig.SlotBrowserURL,
		logger,
	)

	orchOpts := []conversation.Option{
		conversation.WithLocale(opts.locale),
		conversation.WithListenTimeout(opts.listenTimeout),
		conversation.WithContact(opts.phone, opts.email),
		conversation.WithWeather(weather.NewRemoteAdvisor(opts.apiURL)),
	}
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		gemini, err := ai.NewGeminiClient(ctx, key, config.AppConfig.GeminiModel)
		if err != nil {
			logger.Warn("Gemini unavailable, continuing without NLP", zap.Error(err))
		} else {
			defer gemini.Close()
			orchOpts = append(orchOpts, conversation.WithExtractor(ai.NewGeminiExtractor(gemini, logger)))
		}
	}
	if opts.notify {
		svc := notification.NewDefaultNotificationService(
			notification.NewTwilioSMS(config.AppConfig.TwilioAccountSID, config.AppConfig.TwilioAuthToken, config.AppConfig.TwilioFromNumber, logger),
			notification.NewFallbackMailer(logger,
				notification.NewSMTPMailer(config.AppConfig.SMTPHost, config.AppConfig.SMTPPort, config.AppConfig.SMTPUsername,
					config.AppConfig.SMTPPassword, config.AppConfig.MailFrom, config.AppConfig.MailFromName, config.AppConfig.SMTPUseTLS),
				notification.NewSendGridMailer(config.AppConfig.SendGridAPIKey, config.AppConfig.MailFrom, config.AppConfig.MailFromName),
				notification.NewLogMailer(!config.IsProduction(), logger),
			),
			nil,
			logger,
		)
		orchOpts = append(orchOpts, conversation.WithDispatcher(notification.NewInlineDispatcher(svc, logger)))
	}

	orch := conversation.NewOrchestrator(speech, negotiator, logger, orchOpts...)
	res, err := orch.Run(ctx, stop)
	if err != nil {
		return err
	}
	if res.Booking != nil {
		fmt.Printf("\nbooking %s: %s at %s for %d, %s seating\n",
			res.Booking.ID, res.Booking.BookingDate, res.Booking.BookingTime,
			res.Booking.NumberOfGuests, res.Booking.SeatingPreference)
	}
	// Give an inline confirmation a moment to leave before the process exits.
	if opts.notify && res.State == models.StateConfirmed {
		time.Sleep(2 * time.Second)
	}
	return nil
}

func runWatch(parent context.Context, opts *options) error {
	if opts.natsURL == "" {
		return fmt.Errorf("no NATS URL: set NATS_URL or pass --nats")
	}
	logger := newLogger(opts.verbose)
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	bus, err := events.NewNATSBus(opts.natsURL, logger)
	if err != nil {
		return err
	}
	defer bus.Close()

	fmt.Println("watching for confirmed bookings, Ctrl-C to quit")
	return bus.Subscribe(ctx, func(ev events.BookingEvent) {
		b := ev.Booking
		fmt.Printf("%s  %s %s  %-20s x%d  %s\n",
			ev.OccurredAt.Format(time.Kitchen), b.BookingDate, b.BookingTime,
			b.CustomerName, b.NumberOfGuests, b.SeatingPreference)
	})
}

func runAvailability(ctx context.Context, opts *options) error {
	open, closing, duration := config.Hours()
	grid, err := booking.NewRemoteStore(opts.apiURL).QueryAvailability(ctx, opts.date, open, closing, duration)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d of %d slots open\n", grid.Date, len(grid.Available), len(grid.AllSlots))
	for _, s := range grid.Available {
		fmt.Println("  " + s)
	}
	return nil
}
