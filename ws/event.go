// Package ws, WebSocket bağlantı yönetimi ve gerçek zamanlı sipariş takibini sağlar.
//
// Mimari:
// - Hub: Tüm bağlantıları yöneten merkezi yapı (Observer pattern)
// - Client: Her WebSocket bağlantısını temsil eder
// - Event: Server'dan client'a iletilen mesaj formatı
//
// Event akışı:
// 1. Admin sipariş durumunu günceller → HTTP PUT → Service → DB kayıt
// 2. Service, Hub'ın BroadcastToUser metodunu çağırır
// 3. Hub, event'i siparişin sahibinin tüm bağlantılarına iletir
// 4. Her client'ın WritePump'ı event'i WebSocket'e yazar
// 5. Frontend event'i alır ve sipariş listesini günceller
package ws

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Op (operation): Event türü — "order_status", "heartbeat_ack" vb.
// Data: Event'e özgü payload — güncellenmiş sipariş objesi vb.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
}

// Client → Server operasyonları
const (
	OpHeartbeat = "heartbeat" // Client periyodik gönderir — "hâlâ bağlıyım" sinyali
)

// Server → Client operasyonları
const (
	OpHeartbeatAck = "heartbeat_ack" // Heartbeat'e yanıt
	OpOrderStatus  = "order_status"  // Siparişin durumu değişti — payload: güncel Order
	OpOrderCreate  = "order_create"  // Yeni sipariş oluşturuldu (admin paneli için)
)
