package game

import (
	"encoding/base64"
	"path"
)

// maxAvatarSize caps the decoded avatar payload at 1 MiB.
const maxAvatarSize = 1 << 20

// onPicture sets the sender's avatar. The payload size is checked against
// the base64 text before decoding, so an oversized upload costs nothing.
// Publication is at-most-once per (owner, filename) key.
func (s *Session) onPicture(sender string, args []string) {
	if len(args) < 1 {
		return
	}

	var person *PersonAccount
	for _, p := range s.state.MainPersons() {
		if p.Name == sender {
			person = p
			break
		}
	}

	if person == nil {
		return
	}

	if len(args) < 2 {
		person.Picture = args[0]
		s.informPicture(&person.Account)
		return
	}

	file := sender + "_" + path.Base(args[0])
	var uri string

	if !s.share.ContainsUri(file) {
		payload := args[1]

		size := (len(payload)*3 + 3) / 4
		if n := len(payload); n > 0 && payload[n-1] == '=' {
			if n > 1 && payload[n-2] == '=' {
				size -= 2
			} else {
				size--
			}
		}

		if size > maxAvatarSize {
			s.sendToArgs(sender, MsgReplic, replicSpecial, "Avatar is too big")
			return
		}

		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			s.sendToArgs(sender, MsgReplic, replicSpecial, "Invalid avatar data")
			return
		}

		uri = s.share.CreateUri(file, data)
	} else {
		uri = s.share.MakeUri(file)
	}

	person.Picture = "URI: " + uri

	s.informPicture(&person.Account)
}

func (s *Session) informPicture(account *Account) {
	if account.Picture == "" {
		return
	}

	s.sendAllArgs(MsgPicture, account.Name, account.Picture)
}

func (s *Session) informPictureTo(account *Account, target string) {
	if account.Picture == "" {
		return
	}

	s.sendToArgs(target, MsgPicture, account.Name, account.Picture)
}
