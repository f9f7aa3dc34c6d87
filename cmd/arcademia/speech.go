package main

import (
	"github.com/philipparndt/arcademia/internal/logging"
	"github.com/philipparndt/arcademia/pkg/speech"
)

func newSpeaker() *speech.Speaker {
	synth := speech.NewCommandSynthesizer(speech.Options{
		Rate:    cfg.Speech.Rate,
		Volume:  cfg.Speech.Volume,
		Command: cfg.Speech.Command,
	})
	if !synth.Available() {
		logging.Warn("no speech program found; install espeak or set speech.command")
	}
	return speech.NewSpeaker(synth, logging.Logger())
}
