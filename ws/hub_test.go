package ws

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/balikhane/models"
)

func newTestClient(userID string, role models.UserRole) *Client {
	return &Client{
		userID: userID,
		role:   role,
		send:   make(chan []byte, sendBufferSize),
	}
}

// Hub send channel'ını kapattıktan sonra ReadPump hâlâ heartbeat ack
// kuyruklayabilir — bu panic'lememeli, event sessizce düşmeli.
func TestClientSendAfterCloseDoesNotPanic(t *testing.T) {
	c := newTestClient("user-1", models.RoleUser)

	c.closeSend()

	require.NotPanics(t, func() {
		c.sendEvent(Event{Op: OpHeartbeatAck})
	})
	assert.False(t, c.enqueue([]byte("dropped")))

	// closeSend idempotent
	require.NotPanics(t, c.closeSend)
}

func TestClientEnqueueCloseRace(t *testing.T) {
	c := newTestClient("user-1", models.RoleUser)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				c.enqueue([]byte("event"))
			}
		}()
	}
	c.closeSend()
	wg.Wait()
}

func drain(c *Client) [][]byte {
	var got [][]byte
	for {
		select {
		case data := <-c.send:
			got = append(got, data)
		default:
			return got
		}
	}
}

func TestHubBroadcastToUser(t *testing.T) {
	h := NewHub()

	alice1 := newTestClient("alice", models.RoleUser)
	alice2 := newTestClient("alice", models.RoleUser)
	bob := newTestClient("bob", models.RoleUser)
	h.addClient(alice1)
	h.addClient(alice2)
	h.addClient(bob)

	h.BroadcastToUser("alice", Event{Op: OpOrderStatus})

	// Kullanıcının HER bağlantısı alır, diğer kullanıcılar almaz
	assert.Len(t, drain(alice1), 1)
	assert.Len(t, drain(alice2), 1)
	assert.Empty(t, drain(bob))
}

func TestHubBroadcastToAdmins(t *testing.T) {
	h := NewHub()

	admin := newTestClient("admin-1", models.RoleAdmin)
	user := newTestClient("user-1", models.RoleUser)
	h.addClient(admin)
	h.addClient(user)

	h.BroadcastToAdmins(Event{Op: OpOrderCreate})

	assert.Len(t, drain(admin), 1)
	assert.Empty(t, drain(user))
}

// Çıkarılmış bir client'a broadcast panic'lememeli — send channel'ı
// kapalıdır ve event düşer.
func TestHubBroadcastAfterRemove(t *testing.T) {
	h := NewHub()

	c := newTestClient("alice", models.RoleUser)
	h.addClient(c)
	h.removeClient(c)

	require.NotPanics(t, func() {
		h.BroadcastToUser("alice", Event{Op: OpOrderStatus})
	})

	// removeClient idempotent — ikinci çıkarma da sorunsuz
	require.NotPanics(t, func() { h.removeClient(c) })
}

func TestHubShutdownClosesAllClients(t *testing.T) {
	h := NewHub()

	a := newTestClient("alice", models.RoleUser)
	b := newTestClient("bob", models.RoleAdmin)
	h.addClient(a)
	h.addClient(b)

	h.Shutdown()

	// Kapalı channel'dan okuma ok=false döner — WritePump'ın çıkış sinyali
	_, ok := <-a.send
	assert.False(t, ok)
	_, ok = <-b.send
	assert.False(t, ok)

	require.NotPanics(t, func() {
		a.sendEvent(Event{Op: OpHeartbeatAck})
	})
}
