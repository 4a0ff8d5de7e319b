// Package cpf implements the Brazilian individual taxpayer number (CPF)
// check-digit algorithm.
//
// A CPF is 11 decimal digits where the last two are check digits computed with
// a weighted modulo-11 sum over the preceding digits. Format and checksum are
// separate concerns here: IsBare reports whether the input is written as a
// plain 11-digit numeral, while IsValid strips separators before checking the
// digits.
package cpf
