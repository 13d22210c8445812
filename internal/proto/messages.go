package proto

import "google.golang.org/protobuf/encoding/protowire"

// AccountInfo is the public view of a persona. The password hash never
// leaves the server.
type AccountInfo struct {
	ID          int64  // 1
	LoginID     string // 2
	DisplayName string // 3
	Email       string // 4
	Address     string // 5
}

func (m *AccountInfo) AppendWire(b []byte) []byte {
	b = appendInt64(b, 1, m.ID)
	b = appendString(b, 2, m.LoginID)
	b = appendString(b, 3, m.DisplayName)
	b = appendString(b, 4, m.Email)
	return appendString(b, 5, m.Address)
}

func (m *AccountInfo) UnmarshalWire(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeInt64(num, typ, b, &m.ID)
		case 2:
			return consumeString(num, typ, b, &m.LoginID)
		case 3:
			return consumeString(num, typ, b, &m.DisplayName)
		case 4:
			return consumeString(num, typ, b, &m.Email)
		case 5:
			return consumeString(num, typ, b, &m.Address)
		}
		return skipField(num, typ, b)
	})
}

type AuthenticateRequest struct {
	Login    string // 1
	Password string // 2
}

func (m *AuthenticateRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Login)
	return appendString(b, 2, m.Password)
}

func (m *AuthenticateRequest) UnmarshalWire(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(num, typ, b, &m.Login)
		case 2:
			return consumeString(num, typ, b, &m.Password)
		}
		return skipField(num, typ, b)
	})
}

type AuthenticateResponse struct {
	Account     *AccountInfo // 1
	AccessToken string       // 2
}

func (m *AuthenticateResponse) AppendWire(b []byte) []byte {
	if m.Account != nil {
		b = appendMessage(b, 1, m.Account)
	}
	return appendString(b, 2, m.AccessToken)
}

func (m *AuthenticateResponse) UnmarshalWire(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			if m.Account == nil {
				m.Account = &AccountInfo{}
			}
			return consumeMessage(num, typ, b, m.Account)
		case 2:
			return consumeString(num, typ, b, &m.AccessToken)
		}
		return skipField(num, typ, b)
	})
}

type RegisterRequest struct {
	LoginID     string // 1
	DisplayName string // 2
	Email       string // 3
	Address     string // 4
	Password    string // 5
}

func (m *RegisterRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.LoginID)
	b = appendString(b, 2, m.DisplayName)
	b = appendString(b, 3, m.Email)
	b = appendString(b, 4, m.Address)
	return appendString(b, 5, m.Password)
}

func (m *RegisterRequest) UnmarshalWire(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(num, typ, b, &m.LoginID)
		case 2:
			return consumeString(num, typ, b, &m.DisplayName)
		case 3:
			return consumeString(num, typ, b, &m.Email)
		case 4:
			return consumeString(num, typ, b, &m.Address)
		case 5:
			return consumeString(num, typ, b, &m.Password)
		}
		return skipField(num, typ, b)
	})
}

// accountEnvelope is the shape shared by responses that carry only an
// account in field 1.
type accountEnvelope struct {
	account **AccountInfo
}

func (e accountEnvelope) AppendWire(b []byte) []byte {
	if *e.account != nil {
		b = appendMessage(b, 1, *e.account)
	}
	return b
}

func (e accountEnvelope) UnmarshalWire(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			if *e.account == nil {
				*e.account = &AccountInfo{}
			}
			return consumeMessage(num, typ, b, *e.account)
		}
		return skipField(num, typ, b)
	})
}

type RegisterResponse struct {
	Account *AccountInfo // 1
}

func (m *RegisterResponse) AppendWire(b []byte) []byte {
	return accountEnvelope{&m.Account}.AppendWire(b)
}

func (m *RegisterResponse) UnmarshalWire(b []byte) error {
	return accountEnvelope{&m.Account}.UnmarshalWire(b)
}

// DeleteAccountRequest carries no fields; the account is taken from the
// access token.
type DeleteAccountRequest struct{}

func (m *DeleteAccountRequest) AppendWire(b []byte) []byte   { return b }
func (m *DeleteAccountRequest) UnmarshalWire(b []byte) error { return walkFields(b, skipField) }

type DeleteAccountResponse struct{}

func (m *DeleteAccountResponse) AppendWire(b []byte) []byte   { return b }
func (m *DeleteAccountResponse) UnmarshalWire(b []byte) error { return walkFields(b, skipField) }

type GetAccountRequest struct{}

func (m *GetAccountRequest) AppendWire(b []byte) []byte   { return b }
func (m *GetAccountRequest) UnmarshalWire(b []byte) error { return walkFields(b, skipField) }

type GetAccountResponse struct {
	Account *AccountInfo // 1
}

func (m *GetAccountResponse) AppendWire(b []byte) []byte {
	return accountEnvelope{&m.Account}.AppendWire(b)
}

func (m *GetAccountResponse) UnmarshalWire(b []byte) error {
	return accountEnvelope{&m.Account}.UnmarshalWire(b)
}

type PingRequest struct{}

func (m *PingRequest) AppendWire(b []byte) []byte   { return b }
func (m *PingRequest) UnmarshalWire(b []byte) error { return walkFields(b, skipField) }

type PingResponse struct {
	Status string // 1
}

func (m *PingResponse) AppendWire(b []byte) []byte {
	return appendString(b, 1, m.Status)
}

func (m *PingResponse) UnmarshalWire(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(num, typ, b, &m.Status)
		}
		return skipField(num, typ, b)
	})
}
