package game

import (
	"fmt"
	"strings"
)

// ArgsSeparator splits a protocol line into command and positional
// arguments. It never appears inside payloads.
const ArgsSeparator = "\n"

// Inbound commands.
const (
	MsgConnect    = "CONNECT"
	MsgDisconnect = "DISCONNECT"
	MsgGameInfo   = "GAMEINFO"
	MsgInfo       = "INFO"
	MsgConfig     = "CONFIG"
	MsgFirst      = "FIRST"
	MsgPause      = "PAUSE"
	MsgStart      = "START"
	MsgReady      = "READY"
	MsgPicture    = "PICTURE"
	MsgChoice     = "CHOICE"
	MsgI          = "I"
	MsgPass       = "PASS"
	MsgAnswer     = "ANSWER"
	MsgAtom       = "ATOM"
	MsgReport     = "REPORT"
	MsgIsRight    = "ISRIGHT"
	MsgNext       = "NEXT"
	MsgCat        = "CAT"
	MsgCatCost    = "CATCOST"
	MsgStake      = "STAKE"
	MsgNextDelete = "NEXTDELETE"
	MsgDelete     = "DELETE"
	MsgFinalStake = "FINALSTAKE"
	MsgApellate   = "APELLATE"
	MsgChange     = "CHANGE"
	MsgMove       = "MOVE"
	MsgKick       = "KICK"
	MsgBan        = "BAN"
	MsgMark       = "MARK"
)

// Outbound announcements.
const (
	MsgAccepted          = "ACCEPTED"
	MsgConnected         = "CONNECTED"
	MsgDisconnected      = "DISCONNECTED"
	MsgRefuse            = "REFUSE"
	MsgCancel            = "CANCEL"
	MsgReplic            = "REPLIC"
	MsgSums              = "SUMS"
	MsgStage             = "STAGE"
	MsgHostname          = "HOSTNAME"
	MsgTimer             = "TIMER"
	MsgInfo2             = "INFO2"
	MsgWrongTry          = "WRONGTRY"
	MsgPersonFinalStake  = "PERSONFINALSTAKE"
	MsgPersonFinalAnswer = "PERSONFINALANSWER"
	MsgPersonApellated   = "PERSONAPELLATED"
	MsgFalseStart        = "FALSESTART"
	MsgButtonBlocking    = "BUTTON_BLOCKING_TIME"
	MsgReadingSpeed      = "READINGSPEED"
	MsgApellationEnabled = "APELLATION_ENABLED"
	MsgComputerAccounts  = "COMPUTERACCOUNTS"
)

// Config subcommands.
const (
	ConfigAddTable    = "ADDTABLE"
	ConfigDeleteTable = "DELETETABLE"
	ConfigFree        = "FREE"
	ConfigSet         = "SET"
	ConfigChangeType  = "CHANGETYPE"
)

// replicSpecial prefixes chat announcements produced by the game itself.
const replicSpecial = "s"

func joinArgs(args ...any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, ArgsSeparator)
}

func plusMinus(b bool) string {
	if b {
		return "+"
	}
	return "-"
}
