package http

import (
	authUsecases "tzsync/internal/application/auth/usecases"
	preferenceUsecases "tzsync/internal/application/preference/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Preferences
	getTimezoneUC    *preferenceUsecases.GetTimezoneUseCase
	setTimezoneUC    *preferenceUsecases.SetTimezoneUseCase
	deleteTimezoneUC *preferenceUsecases.DeleteTimezoneUseCase
	listTimezonesUC  *preferenceUsecases.ListTimezonesUseCase
	getCurrentUserUC *preferenceUsecases.GetCurrentUserUseCase

	// Auth
	initiateLoginUC  *authUsecases.InitiateLoginUseCase
	handleCallbackUC *authUsecases.HandleCallbackUseCase
	logoutUC         *authUsecases.LogoutUseCase
}
