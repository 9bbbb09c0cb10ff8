// Package fuzztests houses Go fuzz harnesses for the lexer and parser.
// They guard against panics, hangs and span corruption on arbitrary input
// and check that clean inputs survive a print/parse round trip.
//
// Назначение: прогонять байты через source -> lexer -> parser в обоих
// режимах восстановления.
//
// Не делает: генерацию корпусов на диск, запуск CLI.
package fuzztests
