package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// fivetDescriptor builds the subset of fivet.proto the tests exchange with
// the protobuf runtime.
func fivetDescriptor(t *testing.T) protoreflect.FileDescriptor {
	t.Helper()

	field := func(name string, num int32, typ descriptorpb.FieldDescriptorProto_Type, typeName string) *descriptorpb.FieldDescriptorProto {
		f := &descriptorpb.FieldDescriptorProto{
			Name:   proto.String(name),
			Number: proto.Int32(num),
			Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
			Type:   typ.Enum(),
		}
		if typeName != "" {
			f.TypeName = proto.String(typeName)
		}
		return f
	}
	const (
		str = descriptorpb.FieldDescriptorProto_TYPE_STRING
		i64 = descriptorpb.FieldDescriptorProto_TYPE_INT64
		msg = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE
	)

	fd := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("fivet.proto"),
		Package: proto.String("fivet"),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("AccountInfo"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("id", 1, i64, ""),
					field("login_id", 2, str, ""),
					field("display_name", 3, str, ""),
					field("email", 4, str, ""),
					field("address", 5, str, ""),
				},
			},
			{
				Name: proto.String("AuthenticateRequest"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("login", 1, str, ""),
					field("password", 2, str, ""),
				},
			},
			{
				Name: proto.String("AuthenticateResponse"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("account", 1, msg, ".fivet.AccountInfo"),
					field("access_token", 2, str, ""),
				},
			},
		},
	}

	file, err := protodesc.NewFile(fd, nil)
	require.NoError(t, err)
	return file
}

func TestCodec_RegisteredAsDefault(t *testing.T) {
	c := encoding.GetCodec("proto")
	require.NotNil(t, c)
	assert.IsType(t, wireCodec{}, c)
}

func TestCodec_DecodableByProtobufRuntime(t *testing.T) {
	desc := fivetDescriptor(t).Messages().ByName("AuthenticateResponse")

	b, err := wireCodec{}.Marshal(&AuthenticateResponse{
		Account:     &AccountInfo{ID: 42, LoginID: "130144918", DisplayName: "Diego", Email: "a@b.cl"},
		AccessToken: "tok",
	})
	require.NoError(t, err)

	dyn := dynamicpb.NewMessage(desc)
	require.NoError(t, proto.Unmarshal(b, dyn))

	fields := desc.Fields()
	assert.Equal(t, "tok", dyn.Get(fields.ByName("access_token")).String())

	account := dyn.Get(fields.ByName("account")).Message()
	accountFields := account.Descriptor().Fields()
	assert.Equal(t, int64(42), account.Get(accountFields.ByName("id")).Int())
	assert.Equal(t, "130144918", account.Get(accountFields.ByName("login_id")).String())
	assert.Equal(t, "a@b.cl", account.Get(accountFields.ByName("email")).String())
	assert.False(t, account.Has(accountFields.ByName("address")))
}

func TestCodec_DecodesProtobufRuntimeOutput(t *testing.T) {
	desc := fivetDescriptor(t).Messages().ByName("AuthenticateRequest")
	dyn := dynamicpb.NewMessage(desc)
	dyn.Set(desc.Fields().ByName("login"), protoreflect.ValueOfString("a@b.cl"))
	dyn.Set(desc.Fields().ByName("password"), protoreflect.ValueOfString("secret"))

	b, err := proto.Marshal(dyn)
	require.NoError(t, err)

	var got AuthenticateRequest
	require.NoError(t, wireCodec{}.Unmarshal(b, &got))
	assert.Equal(t, AuthenticateRequest{Login: "a@b.cl", Password: "secret"}, got)
}

func TestCodec_RoundTrip(t *testing.T) {
	in := &RegisterRequest{LoginID: "1", DisplayName: "One", Email: "one@x", Address: "Calle 1", Password: "pw"}
	b, err := wireCodec{}.Marshal(in)
	require.NoError(t, err)

	var out RegisterRequest
	require.NoError(t, wireCodec{}.Unmarshal(b, &out))
	assert.Equal(t, *in, out)

	resp := &GetAccountResponse{Account: &AccountInfo{ID: -1, Email: "neg@x"}}
	b, err = wireCodec{}.Marshal(resp)
	require.NoError(t, err)

	var gotResp GetAccountResponse
	require.NoError(t, wireCodec{}.Unmarshal(b, &gotResp))
	assert.Equal(t, resp, &gotResp)
}

func TestCodec_EmptyMessages(t *testing.T) {
	b, err := wireCodec{}.Marshal(&DeleteAccountRequest{})
	require.NoError(t, err)
	assert.Empty(t, b)

	var req DeleteAccountRequest
	assert.NoError(t, wireCodec{}.Unmarshal(nil, &req))

	var resp RegisterResponse
	require.NoError(t, wireCodec{}.Unmarshal(nil, &resp))
	assert.Nil(t, resp.Account)
}

func TestCodec_SkipsUnknownFields(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 9, protowire.VarintType)
	b = protowire.AppendVarint(b, 7)
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, "OK")
	b = protowire.AppendTag(b, 10, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, 1)

	var got PingResponse
	require.NoError(t, wireCodec{}.Unmarshal(b, &got))
	assert.Equal(t, "OK", got.Status)

	var empty PingRequest
	assert.NoError(t, wireCodec{}.Unmarshal(b, &empty))
}

func TestCodec_MalformedInput(t *testing.T) {
	var ping PingResponse
	truncated := protowire.AppendTag(nil, 1, protowire.BytesType)
	truncated = append(truncated, 5, 'O')
	assert.Error(t, wireCodec{}.Unmarshal(truncated, &ping))

	wrongType := protowire.AppendTag(nil, 1, protowire.VarintType)
	wrongType = protowire.AppendVarint(wrongType, 1)
	assert.ErrorContains(t, wireCodec{}.Unmarshal(wrongType, &ping), "wire type")
}

func TestCodec_ForeignMessages(t *testing.T) {
	b, err := wireCodec{}.Marshal(wrapperspb.String("health"))
	require.NoError(t, err)

	var got wrapperspb.StringValue
	require.NoError(t, wireCodec{}.Unmarshal(b, &got))
	assert.Equal(t, "health", got.GetValue())

	_, err = wireCodec{}.Marshal(struct{}{})
	assert.Error(t, err)
	assert.Error(t, wireCodec{}.Unmarshal(nil, &struct{}{}))
}
