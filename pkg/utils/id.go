package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

// sem 0/o e 1/l/i, os IDs são lidos em logs e relatórios
const (
	runIDAlphabet = "23456789abcdefghjkmnpqrstuvwxyz"
	runIDSize     = 12
)

// GenerateRunID gera o identificador de uma execução de análise
func GenerateRunID() (string, error) {
	return gonanoid.Generate(runIDAlphabet, runIDSize)
}
