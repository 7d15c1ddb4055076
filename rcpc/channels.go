package rcpc

import "fmt"

type Channel int

// Order is significant: it is the index of the channel in every frame.
const (
	ChannelAIL Channel = iota
	ChannelELV
	ChannelTHR
	ChannelRUD
	ChannelSW1
	ChannelSW2
	ChannelSW3
	ChannelSW4
)

const NumChannels = 8

var ChannelList = []Channel{
	ChannelAIL,
	ChannelELV,
	ChannelTHR,
	ChannelRUD,

	ChannelSW1,
	ChannelSW2,
	ChannelSW3,
	ChannelSW4,
}

var channelNameMap = map[Channel]string{
	ChannelAIL: "AIL",
	ChannelELV: "ELV",
	ChannelTHR: "THR",
	ChannelRUD: "RUD",
	ChannelSW1: "SW1",
	ChannelSW2: "SW2",
	ChannelSW3: "SW3",
	ChannelSW4: "SW4",
}

func (c Channel) String() string {
	if n, ok := channelNameMap[c]; ok {
		return n
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// ChannelByName looks up a channel by its short name (AIL, ELV, ...).
func ChannelByName(name string) (Channel, bool) {
	for c, n := range channelNameMap {
		if n == name {
			return c, true
		}
	}
	return 0, false
}
