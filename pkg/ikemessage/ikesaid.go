package ikemessage

// IKESAID identifies the IKE SA a Message belongs to: the pair of SPIs
// chosen by each peer plus which of the two this endpoint is (spec.md
// Section 3, "together the IKE SA id"). It is a small value type, the way
// the original strongSwan ike_sa_id_t is its own object rather than three
// loose fields on message_t.
type IKESAID struct {
	InitiatorSPI uint64
	ResponderSPI uint64
	Initiator    bool
}

// Clone returns a copy of id.
func (id IKESAID) Clone() IKESAID {
	return id
}
