package main

import "kyc-screening/internal/bootstrap/screening_service"

// @title KYC Screening API
// @version 1.0
// @description Сервис проверки клиентов по санкционным спискам и оценки риска (KYC)
// @host localhost:8080
// @BasePath /api/v1
func main() { screening_service.StartScreeningService() }
