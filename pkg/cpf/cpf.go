// Package cpf valida CPFs brasileños (Cadastro de Pessoas Físicas) usando el
// algoritmo módulo 11 de dos dígitos verificadores de la Receita Federal.
//
// Decisión documentada: los CPFs con los 11 dígitos iguales (111.111.111-11,
// etc.) pasan el cálculo aritmético pero son secuencias degeneradas conocidas
// y se RECHAZAN siempre, conforme a la regla estándar de checksum.
package cpf

import (
	"fmt"
	"unicode"
)

// pesos para el cálculo de los dígitos verificadores del CPF.
// El primero se calcula sobre los 9 primeros dígitos, el segundo sobre 10.
var (
	cpfWeights1 = [9]int{10, 9, 8, 7, 6, 5, 4, 3, 2}
	cpfWeights2 = [10]int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Normalize valida el CPF (con o sin puntos/guion) y devuelve su forma
// canónica de 11 dígitos, que es la que se persiste. Es una función pura y
// total: cualquier entrada malformada devuelve error, nunca pánico.
func Normalize(raw string) (string, error) {
	digits := extractDigits(raw)
	if len(digits) != 11 {
		return "", fmt.Errorf("cpf: debe tener 11 dígitos, se encontraron %d", len(digits))
	}
	if allEqual(digits) {
		return "", fmt.Errorf("cpf: secuencia degenerada de dígitos idénticos")
	}
	if digits[9] != checkDigit(digits[:9], cpfWeights1[:]) {
		return "", fmt.Errorf("cpf: primer dígito verificador inválido")
	}
	if digits[10] != checkDigit(digits[:10], cpfWeights2[:]) {
		return "", fmt.Errorf("cpf: segundo dígito verificador inválido")
	}
	return string(digits), nil
}

// IsValid indica si el CPF es válido, sin devolver la forma normalizada.
func IsValid(raw string) bool {
	_, err := Normalize(raw)
	return err == nil
}

// checkDigit calcula un dígito verificador: suma ponderada módulo 11;
// si el resto es menor que 2 el dígito es 0, si no es 11 menos el resto.
func checkDigit(digits []byte, weights []int) byte {
	var sum int
	for i, d := range digits {
		sum += int(d-'0') * weights[i]
	}
	remainder := sum % 11
	if remainder < 2 {
		return '0'
	}
	return byte('0' + (11 - remainder))
}

func allEqual(digits []byte) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
