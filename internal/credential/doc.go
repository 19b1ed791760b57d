// Package credential persists the door password and the enrolled RFID tags.
//
// Two plain-text records live in the storage directory:
//
//	password.txt   six comma-separated digits, e.g. 1,2,3,4,5,6
//	uid.txt        comma-separated tag UIDs, e.g. 104523187,2251346
//
// A missing record is not an error. A password record that is unreadable
// or malformed falls back to DefaultPassword, which is the factory code
// printed in the installation guide.
//
// Every mutation rewrites the full records. Each record is written to a
// temporary file and renamed into place so a reader never sees half a
// record.
package credential
