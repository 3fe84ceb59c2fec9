package room

import "crypto/rand"

const (
	roomIDLength   = 8
	playerIDLength = 12
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomID(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		panic("room: crypto/rand unavailable: " + err.Error())
	}
	for i := range buf {
		buf[i] = idAlphabet[int(buf[i])%len(idAlphabet)]
	}
	return string(buf)
}
