package speech

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

func wavBytes(t *testing.T, seconds int) []byte {
	t.Helper()
	const byteRate = sampleRate * 2
	h := waveHeader{
		FmtSize:       16,
		AudioFormat:   1,
		NumChannels:   1,
		SampleRate:    sampleRate,
		ByteRate:      byteRate,
		BlockAlign:    2,
		BitsPerSample: 16,
		DataSize:      uint32(seconds * byteRate),
	}
	copy(h.RiffTag[:], "RIFF")
	copy(h.WaveTag[:], "WAVE")
	copy(h.FmtTag[:], "fmt ")
	copy(h.DataTag[:], "data")
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, h))
	return buf.Bytes()
}

type fakeRecognizer struct {
	req  *speechpb.RecognizeRequest
	resp *speechpb.RecognizeResponse
	err  error
}

func (f *fakeRecognizer) Recognize(_ context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
	f.req = req
	return f.resp, f.err
}

func newFakeTranscriber(rec recognizer, seconds int, t *testing.T) *GoogleTranscriber {
	return &GoogleTranscriber{
		client: rec,
		convert: func(_, out string) error {
			return os.WriteFile(out, wavBytes(t, seconds), 0o600)
		},
		logger: zap.NewNop(),
	}
}

func TestParseWaveHeader(t *testing.T) {
	h, err := parseWaveHeader(wavBytes(t, 3))
	require.NoError(t, err)
	assert.Equal(t, uint32(sampleRate), h.SampleRate)
	assert.Equal(t, 3*time.Second, h.Duration())

	_, err = parseWaveHeader([]byte("short"))
	assert.Error(t, err)
	_, err = parseWaveHeader(make([]byte, 44))
	assert.Error(t, err)
}

func TestTranscribe(t *testing.T) {
	rec := &fakeRecognizer{resp: &speechpb.RecognizeResponse{Results: []*speechpb.SpeechRecognitionResult{
		{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "table for two"}, {Transcript: "table for too"}}},
		{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "tomorrow"}}},
	}}}
	tr := newFakeTranscriber(rec, 2, t)

	text, err := tr.Transcribe(context.Background(), strings.NewReader("raw"), "clip.WAV", "hi-IN")
	require.NoError(t, err)
	assert.Equal(t, "table for two tomorrow", text)
	assert.Equal(t, "hi-IN", rec.req.Config.LanguageCode)
	assert.Equal(t, int32(sampleRate), rec.req.Config.SampleRateHertz)
}

func TestTranscribeRejects(t *testing.T) {
	_, err := newFakeTranscriber(&fakeRecognizer{}, 2, t).Transcribe(context.Background(), strings.NewReader("x"), "clip.mp3", "en-IN")
	assert.ErrorIs(t, err, ErrInvalidAudio)

	_, err = newFakeTranscriber(&fakeRecognizer{}, 61, t).Transcribe(context.Background(), strings.NewReader("x"), "clip.wav", "en-IN")
	assert.ErrorIs(t, err, ErrTooLong)

	_, err = newFakeTranscriber(&fakeRecognizer{err: errors.New("quota")}, 2, t).Transcribe(context.Background(), strings.NewReader("x"), "clip.wav", "en-IN")
	assert.Error(t, err)
}
