// Package fuzztests houses Go fuzz harnesses for the stylesheet pipeline
// (source -> lexer -> parser -> plugins -> writer). They guard against
// panics and hangs on arbitrary input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
