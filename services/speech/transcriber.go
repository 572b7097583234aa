package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	gspeech "cloud.google.com/go/speech/apiv1"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

const (
	MaxDuration      = 60 * time.Second
	MaxFileSize      = 5 * 1024 * 1024
	AllowedExtension = ".wav"
	sampleRate       = 16000
)

var (
	ErrInvalidAudio = errors.New("invalid audio")
	ErrTooLong      = errors.New("audio longer than one minute")
)

// Transcriber turns an uploaded recording into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename, language string) (string, error)
}

type recognizer interface {
	Recognize(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error)
}

type googleClient struct {
	c *gspeech.Client
}

func (g googleClient) Recognize(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
	return g.c.Recognize(ctx, req)
}

// GoogleTranscriber normalizes audio with ffmpeg and sends it to Cloud
// Speech-to-Text as 16 kHz mono LINEAR16.
type GoogleTranscriber struct {
	client  recognizer
	closer  io.Closer
	convert func(in, out string) error
	logger  *zap.Logger
}

func NewGoogleTranscriber(ctx context.Context, credentialsFile string, logger *zap.Logger) (*GoogleTranscriber, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gspeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize speech client: %w", err)
	}
	return &GoogleTranscriber{client: googleClient{client}, closer: client, convert: convertAudio, logger: logger}, nil
}

func (t *GoogleTranscriber) Close() error {
	if t.closer == nil {
		return nil
	}
	return t.closer.Close()
}

func (t *GoogleTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename, language string) (string, error) {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != AllowedExtension {
		return "", fmt.Errorf("%w: expected %s, got %q", ErrInvalidAudio, AllowedExtension, ext)
	}

	in, err := os.CreateTemp("", "audio-*.wav")
	if err != nil {
		return "", err
	}
	defer os.Remove(in.Name())
	defer in.Close()
	if _, err := io.Copy(in, io.LimitReader(audio, MaxFileSize)); err != nil {
		return "", fmt.Errorf("failed to save audio: %w", err)
	}

	out, err := os.CreateTemp("", "converted-*.wav")
	if err != nil {
		return "", err
	}
	defer os.Remove(out.Name())
	out.Close()

	if err := t.convert(in.Name(), out.Name()); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAudio, err)
	}
	data, err := os.ReadFile(out.Name())
	if err != nil {
		return "", err
	}
	h, err := parseWaveHeader(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAudio, err)
	}
	if h.Duration() > MaxDuration {
		return "", ErrTooLong
	}

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   sampleRate,
			LanguageCode:      language,
			AudioChannelCount: 1,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: data},
		},
	}
	resp, err := t.client.Recognize(ctx, req)
	if err != nil {
		return "", fmt.Errorf("speech recognition failed: %w", err)
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			transcript.WriteString(result.Alternatives[0].Transcript + " ")
		}
	}
	text := strings.TrimSpace(transcript.String())
	t.logger.Debug("Transcribed audio", zap.String("language", language), zap.Duration("duration", h.Duration()), zap.Int("chars", len(text)))
	return text, nil
}

func convertAudio(inputPath, outputPath string) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}
	cmd := exec.Command("ffmpeg",
		"-y",
		"-i", inputPath,
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		outputPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %s", stderr.String())
	}
	return nil
}
