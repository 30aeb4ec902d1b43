package handlers

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"barrier-backend/models"
)

type Client struct {
	Conn *websocket.Conn
}

// 클라이언트 관리자
type ClientManager struct {
	clients    map[*websocket.Conn]*Client
	broadcast  chan models.WebSocketMessage
	register   chan *Client
	unregister chan *websocket.Conn
	mutex      sync.RWMutex
}

// 전역 클라이언트 관리자
var Manager = &ClientManager{
	clients:    make(map[*websocket.Conn]*Client),
	broadcast:  make(chan models.WebSocketMessage, 100),
	register:   make(chan *Client),
	unregister: make(chan *websocket.Conn),
}

// 클라이언트 관리 시작
func (manager *ClientManager) Start() {
	for {
		select {
		case client := <-manager.register:
			manager.mutex.Lock()
			manager.clients[client.Conn] = client
			manager.mutex.Unlock()
			log.Printf("뷰어 등록: %s", client.Conn.RemoteAddr())

		case conn := <-manager.unregister:
			manager.mutex.Lock()
			if _, ok := manager.clients[conn]; ok {
				delete(manager.clients, conn)
				_ = conn.Close()
				log.Printf("뷰어 해제: %s", conn.RemoteAddr())
			}
			manager.mutex.Unlock()

		case message := <-manager.broadcast:
			manager.handleBroadcast(message)
		}
	}
}

func (manager *ClientManager) handleBroadcast(message models.WebSocketMessage) {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	for conn := range manager.clients {
		err := conn.WriteJSON(message)
		if err != nil {
			log.Printf("전송 실패: %v", err)
			manager.unregister <- conn
		}
	}
}

// 외부에서 호출할 수 있는 브로드캐스트 메서드
func (manager *ClientManager) BroadcastMessage(msg models.WebSocketMessage) {
	select {
	case manager.broadcast <- msg:
	default:
		log.Println("⚠️ broadcast 채널 가득 참")
	}
}

// GetClientCount - 연결된 뷰어 수 반환
func (manager *ClientManager) GetClientCount() int {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()
	return len(manager.clients)
}

// 웹 뷰어 WebSocket Handler
func HandleViewerWebSocket(c *websocket.Conn) {
	client := &Client{Conn: c}

	Manager.register <- client

	defer func() {
		Manager.unregister <- c
	}()

	// 연결 확인 메시지 전송
	welcomeMsg := models.WebSocketMessage{
		Type: models.MessageTypeSystemInfo,
		Data: map[string]interface{}{
			"message":      "뷰어 연결됨",
			"connected_at": time.Now().Format(time.RFC3339),
		},
		Timestamp: time.Now().UnixMilli(),
	}
	_ = c.WriteJSON(welcomeMsg)

	for {
		var msg models.WebSocketMessage
		err := c.ReadJSON(&msg)
		if err != nil {
			log.Printf("뷰어 메시지 읽기 오류: %v", err)
			break
		}

		if msg.Timestamp == 0 {
			msg.Timestamp = time.Now().UnixMilli()
		}

		switch msg.Type {
		case models.MessageTypeCommand:
			handleLiveCommand(msg)
		default:
			log.Printf("알 수 없는 메시지 타입: %s", msg.Type)
		}
	}
}

// handleLiveCommand - 라이브 실행 명령 처리
func handleLiveCommand(msg models.WebSocketMessage) {
	raw, err := json.Marshal(msg.Data)
	if err != nil {
		log.Printf("❌ 명령 마샬링 오류: %v", err)
		return
	}

	var cmd models.LiveCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		log.Printf("❌ 명령 파싱 오류: %v", err)
		return
	}

	if LiveSim == nil {
		log.Println("⚠️ 라이브 시뮬레이터가 초기화되지 않음")
		return
	}

	switch cmd.Action {
	case "start":
		if err := LiveSim.Start(cmd.Scenario); err != nil {
			log.Printf("❌ 라이브 시작 실패: %v", err)
		}
	case "stop":
		LiveSim.Stop()
	default:
		log.Printf("알 수 없는 명령: %s", cmd.Action)
	}
}
