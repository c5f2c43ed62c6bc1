package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultSystemPrompt = "You are assisting a participant in a research study. " +
	"Answer the participant's request directly and concisely, without referring to the study itself."

// Balanced 4x4 Latin square over the four task types: every type appears
// once in every position across the four orderings.
const defaultSequences = "Labeling,Analytical,Creative,Procedural;" +
	"Analytical,Procedural,Labeling,Creative;" +
	"Creative,Labeling,Procedural,Analytical;" +
	"Procedural,Creative,Analytical,Labeling"

type Config struct {
	Addr            string
	DBUrl           string
	Debug           bool
	MinResponseMs   int
	MaxParticipants int
	APIKey          string
	APIUrl          string
	Model           string
	SystemPrompt    string
	LLMTimeout      time.Duration
	Sequences       [][]string
}

func ParseFlags() (cfg Config, err error) {
	_ = godotenv.Load()

	var host string
	flag.StringVar(&host, "host", "0.0.0.0", "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", 8080, "listen port number (default 8080)")
	flag.StringVar(&cfg.DBUrl, "db-url", "study.sqlite", "path to SQLite3 DB file (default study.sqlite)")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	flag.IntVar(&cfg.MinResponseMs, "min-response-ms", 3000, "minimum /gpt response latency in milliseconds")
	flag.IntVar(&cfg.MaxParticipants, "max-participants", 30, "maximum number of registered participants")
	flag.StringVar(&cfg.Model, "model", "gpt-4o-mini", "model identifier sent upstream")
	flag.StringVar(&cfg.APIUrl, "api-url", "https://api.openai.com/v1/chat/completions", "chat completions endpoint URL")
	flag.StringVar(&cfg.SystemPrompt, "system-prompt", defaultSystemPrompt, "system instruction prepended to every call")
	var timeout uint
	flag.UintVar(&timeout, "llm-timeout", 60, "upstream request timeout in seconds (default 60)")
	var sequences string
	flag.StringVar(&sequences, "sequences", defaultSequences, "semicolon-separated task type orderings")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.LLMTimeout = time.Duration(timeout) * time.Second
	cfg.APIKey = os.Getenv("OPENAI_API_KEY")

	cfg.Sequences, err = ParseSequences(sequences)
	if err != nil {
		return
	}
	if cfg.MaxParticipants <= 0 {
		err = errors.New("parameter -max-participants must be positive")
		return
	}
	if cfg.APIKey == "" {
		err = errors.New("missing environment variable OPENAI_API_KEY")
	}

	return
}

// ParseSequences parses the -sequences syntax: orderings separated by
// semicolons, type labels within an ordering separated by commas.
func ParseSequences(s string) (sequences [][]string, err error) {
	for _, part := range strings.Split(s, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}

		var sequence []string
		for _, label := range strings.Split(part, ",") {
			label = strings.TrimSpace(label)
			if label == "" {
				return nil, fmt.Errorf("empty task type label in ordering %q", part)
			}
			sequence = append(sequence, label)
		}
		sequences = append(sequences, sequence)
	}

	if len(sequences) == 0 {
		err = errors.New("parameter -sequences must list at least one task type ordering")
	}
	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
