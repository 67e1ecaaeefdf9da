package gossip

import "github.com/hashicorp/memberlist"

// valueBroadcast is a single encoded CrdsValue queued for gossip
// transmission. It never invalidates an in-flight broadcast of a
// different value — the table's own overwrite rule is what decides
// which value ultimately wins on the receiving end.
type valueBroadcast struct {
	msg []byte
}

func (b *valueBroadcast) Invalidates(memberlist.Broadcast) bool { return false }
func (b *valueBroadcast) Message() []byte                       { return b.msg }
func (b *valueBroadcast) Finished()                              {}
