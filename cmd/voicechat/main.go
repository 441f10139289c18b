package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"voicechat/internal/audio"
	"voicechat/internal/capability"
	"voicechat/internal/chat"
	"voicechat/internal/fallback"
	"voicechat/internal/listen"
	"voicechat/internal/loop"
	"voicechat/internal/netcheck"
	"voicechat/internal/notify"
	"voicechat/internal/proxy"
	"voicechat/internal/recognize"
	"voicechat/internal/tts"
	"voicechat/pkg/stt"
)

const systemPrompt = "You are a helpful and friendly AI assistant named Ada. " +
	"You provide clear, concise, and accurate responses."

const apiTimeout = 10 * time.Second

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	proxyAddr := cli.StringP("proxy", "p", "", "SOCKS proxy address for API traffic")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	model := cli.StringP("model", "m", "gpt-3.5-turbo", "Chat completion model")
	whisperModel := cli.StringP("whisper-model", "w", "models/ggml-base.en.bin", "Whisper model path")
	cueFile := cli.StringP("cue", "c", "", "Listening cue sound file (mp3/ogg/wav)")
	lang := cli.String("lang", "en-US", "Basic recognition language")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	log.Info("Booting up")

	godotenv.Load(*envFile)

	engine, err := tts.NewEngine()
	if err != nil {
		log.Error("Failed to init speech engine", "err", err)
		os.Exit(1)
	}
	defer engine.Close()

	log.Debug("Loaded speech engine")

	var flags capability.Flags

	rec := audio.NewRecorder()
	if err := rec.Init(); err != nil {
		log.Warn("Audio capture unavailable, advanced audio features disabled", "err", err)
	} else {
		flags.AudioCapture = true
		defer rec.Close()
	}

	if err := audio.SelfCheckCodec(); err != nil {
		log.Warn("Scratch WAV codec unavailable, advanced audio features disabled", "err", err)
	} else {
		flags.AudioEncoding = true
	}

	log.Info("Loading whisper model, this might take a moment", "path", *whisperModel)
	transcriber, err := stt.NewTranscriber(*whisperModel, stt.Options{Language: "en"})
	if err != nil {
		log.Warn("Advanced speech recognition disabled", "err", err)
	} else {
		flags.AdvancedTranscription = true
		defer transcriber.Close()
	}

	httpClient := &http.Client{Timeout: apiTimeout}
	if *proxyAddr != "" {
		httpClient, err = proxy.NewSocksClient(*proxyAddr, apiTimeout)
		if err != nil {
			log.Error("Failed to dial socks proxy", "proxy", *proxyAddr, "err", err)
			os.Exit(1)
		}
		log.Debug("Loaded proxy")
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
	)

	if apiKey == "" {
		log.Warn("OPENAI_API_KEY not set, the chatbot will operate in offline mode")
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
		err := chat.ProbeService(ctx, client, *model)
		cancel()
		switch {
		case err == nil:
			flags.RemoteService = true
			log.Info("OpenAI client initialized successfully")
		case strings.Contains(err.Error(), "exceeded your current quota"):
			log.Warn("OpenAI API quota exceeded, check your billing status")
		case strings.Contains(err.Error(), "Incorrect API key"):
			log.Warn("Invalid OpenAI API key, check your .env file")
		default:
			log.Warn("OpenAI API error, the chatbot will operate in offline mode", "err", err)
		}
	}

	if netcheck.Online() {
		log.Info("Online mode, connected to internet")
	} else {
		log.Warn("Offline mode, no internet connection")
	}

	sel := &listen.Selector{
		Flags:  flags,
		Online: netcheck.Online,
		Mic:    rec,
		Basic:  recognize.NewClient(*lang),
	}
	if transcriber != nil {
		sel.Advanced = transcriber
	}
	if *cueFile != "" {
		var cueBroken bool
		sel.Cue = func() {
			if cueBroken {
				return
			}
			if err := notify.PlayCue(*cueFile); err != nil {
				log.Warn("Disabling listening cue", "err", err)
				cueBroken = true
			}
		}
	}

	responder := &chat.Responder{
		History:   chat.NewHistory(systemPrompt),
		Completer: &chat.OpenAICompleter{Client: client, Model: *model},
		Online:    netcheck.Online,
		Available: flags.RemoteService,
		Fallback:  fallback.Responder{}.Reply,
	}

	conv := &loop.Loop{
		Listen:  sel.Listen,
		Respond: responder.Reply,
		Speak:   engine.Speak,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	defer func() {
		if r := recover(); r != nil {
			log.Error("Unexpected error", "panic", r)
			engine.Speak("I encountered an error and need to shut down. Please restart me.")
			os.Exit(1)
		}
	}()

	log.Info("Boot up - successful")

	if !conv.Run(ctx) {
		log.Info("Terminated by user")
		engine.Speak("Goodbye!")
	}
}
