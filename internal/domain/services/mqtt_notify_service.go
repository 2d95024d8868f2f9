package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"hms-http-service/internal/domain/models"
	"hms-http-service/internal/infrastructure/config"
	"hms-http-service/pkg/logger"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// MQTT主题模板
const (
	// TopicNoticeCreated 楼宇通知发布事件主题，%d为楼宇ID
	TopicNoticeCreated = "hms/building/%d/notices"
	// TopicRequestStatusChanged 维修请求状态变更事件主题，%d为楼宇ID
	TopicRequestStatusChanged = "hms/building/%d/requests"
)

// NoticeCreatedEvent 通知发布事件的载荷
type NoticeCreatedEvent struct {
	NoticeID   uint   `json:"noticeId"`
	BuildingID uint   `json:"buildingId"`
	Title      string `json:"title"`
	CreatedAt  string `json:"createdAt"`
}

// RequestStatusChangedEvent 维修请求状态变更事件的载荷
type RequestStatusChangedEvent struct {
	RequestID       uint   `json:"requestId"`
	BuildingID      uint   `json:"buildingId"`
	ApartmentNumber string `json:"apartmentNumber"`
	Status          string `json:"status"`
	ChangedAt       string `json:"changedAt"`
}

// InterfaceNotifyService defines the event notification service interface
type InterfaceNotifyService interface {
	Connect() error
	Disconnect()
	PublishNoticeCreated(notice *models.Notice) error
	PublishRequestStatusChanged(request *models.MaintenanceRequest) error
}

// MQTTNotifyService 基于MQTT的事件推送服务
// 所有发布均为尽力而为，调用方不应依赖其成功
type MQTTNotifyService struct {
	Config *config.Config
	Client mqtt.Client

	connected      bool
	connectedMutex sync.RWMutex
	publishMutex   sync.Mutex
}

// NewMQTTNotifyService 创建一个新的MQTT通知服务
// MQTT_ENABLED为false时返回nil，调用方对nil做空操作处理
func NewMQTTNotifyService(cfg *config.Config) InterfaceNotifyService {
	if !cfg.MQTTEnabled {
		logger.Info("MQTT通知未启用，事件推送为空操作")
		return nil
	}

	service := &MQTTNotifyService{
		Config: cfg,
	}
	service.setupMQTTClient()
	return service
}

// setupMQTTClient 设置MQTT客户端
func (s *MQTTNotifyService) setupMQTTClient() {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(s.Config.MQTTBrokerURL)
	// 使用唯一的客户端ID，避免同一服务多实例冲突
	opts.SetClientID(fmt.Sprintf("%s-%s", s.Config.MQTTClientID, uuid.New().String()[:8]))
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Second * 30)
	opts.SetKeepAlive(time.Second * 60)
	opts.SetPingTimeout(time.Second * 10)
	opts.SetCleanSession(true)

	if s.Config.MQTTUsername != "" {
		opts.SetUsername(s.Config.MQTTUsername)
		opts.SetPassword(s.Config.MQTTPassword)
	}

	// 连接丢失回调
	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		logger.Warning("[MQTT] 连接丢失: %v", err)
		s.connectedMutex.Lock()
		s.connected = false
		s.connectedMutex.Unlock()
	})

	// 连接建立回调
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		logger.Info("[MQTT] 成功连接到 %s", s.Config.MQTTBrokerURL)
		s.connectedMutex.Lock()
		s.connected = true
		s.connectedMutex.Unlock()
	})

	s.Client = mqtt.NewClient(opts)
}

// Connect 连接到MQTT服务器
func (s *MQTTNotifyService) Connect() error {
	s.connectedMutex.RLock()
	isConnected := s.connected && s.Client.IsConnected()
	s.connectedMutex.RUnlock()

	if isConnected {
		return nil
	}

	token := s.Client.Connect()
	if !token.WaitTimeout(5*time.Second) || token.Error() != nil {
		return fmt.Errorf("MQTT连接失败: %v", token.Error())
	}

	s.connectedMutex.Lock()
	s.connected = true
	s.connectedMutex.Unlock()
	return nil
}

// Disconnect 断开与MQTT服务器的连接
func (s *MQTTNotifyService) Disconnect() {
	if s.Client != nil && s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
}

// PublishNoticeCreated 推送通知发布事件
func (s *MQTTNotifyService) PublishNoticeCreated(notice *models.Notice) error {
	event := NoticeCreatedEvent{
		NoticeID:   notice.ID,
		BuildingID: notice.BuildingID,
		Title:      notice.Title,
		CreatedAt:  notice.CreatedAt.Format(time.RFC3339),
	}
	topic := fmt.Sprintf(TopicNoticeCreated, notice.BuildingID)
	return s.publishMessage(topic, event)
}

// PublishRequestStatusChanged 推送维修请求状态变更事件
func (s *MQTTNotifyService) PublishRequestStatusChanged(request *models.MaintenanceRequest) error {
	event := RequestStatusChangedEvent{
		RequestID:       request.ID,
		BuildingID:      request.BuildingID,
		ApartmentNumber: request.ApartmentNumber,
		Status:          request.Status,
		ChangedAt:       request.UpdatedAt.Format(time.RFC3339),
	}
	topic := fmt.Sprintf(TopicRequestStatusChanged, request.BuildingID)
	return s.publishMessage(topic, event)
}

// publishMessage 序列化并发布消息
func (s *MQTTNotifyService) publishMessage(topic string, payload interface{}) error {
	// 加锁保护发布过程，避免并发发布冲突
	s.publishMutex.Lock()
	defer s.publishMutex.Unlock()

	s.connectedMutex.RLock()
	isConnected := s.connected && s.Client.IsConnected()
	s.connectedMutex.RUnlock()

	if !isConnected {
		if err := s.Connect(); err != nil {
			return fmt.Errorf("MQTT客户端未连接: %v", err)
		}
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化消息失败: %v", err)
	}

	qos := byte(s.Config.MQTTQoS)
	token := s.Client.Publish(topic, qos, s.Config.MQTTRetained, jsonData)

	// 设置超时时间，避免无限等待
	if !token.WaitTimeout(3 * time.Second) {
		return fmt.Errorf("发布消息超时")
	}
	if token.Error() != nil {
		return fmt.Errorf("发布消息失败: %v", token.Error())
	}

	logger.Info("[MQTT] 已发布消息到主题: %s", topic)
	return nil
}
